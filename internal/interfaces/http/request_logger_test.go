package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/swifthomes-api/internal/interfaces/http"
	"github.com/jhoicas/swifthomes-api/pkg/logger"
)

type observed struct {
	method, route string
	status        int
}

type fakeObserver struct{ calls []observed }

func (f *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method, route, status})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Out: &buf})
	obs := &fakeObserver{}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(log, obs))
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/7", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "/items/7", entry["path"])
	assert.Equal(t, "/items/:id", entry["route"])
	assert.EqualValues(t, fiber.StatusTeapot, entry["status"])
	assert.NotEmpty(t, entry["request_id"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	require.Len(t, obs.calls, 2)
	assert.Equal(t, observed{http.MethodGet, "/items/:id", fiber.StatusTeapot}, obs.calls[0])
	assert.Equal(t, fiber.StatusInternalServerError, obs.calls[1].status)
}
