package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swifthomes-api/internal/application/ports"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/metrics"
)

func TestRecorder_Counters(t *testing.T) {
	r := metrics.NewRecorder()
	r.LoginAttempt(ports.LoginSucceeded)
	r.LoginAttempt(ports.LoginInvalidCredentials)
	r.LoginAttempt(ports.LoginInvalidCredentials)
	r.GuardDecision(ports.GuardForbidden)
	r.OnboardingCompleted("starter")

	expected := `
# HELP swifthomes_auth_logins_total Intentos de login por resultado
# TYPE swifthomes_auth_logins_total counter
swifthomes_auth_logins_total{result="invalid_credentials"} 2
swifthomes_auth_logins_total{result="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "swifthomes_auth_logins_total"))
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.NewRecorder()
	r.GuardDecision(ports.GuardAllowed)
	r.ObserveRequest(http.MethodGet, "/api/auth/me", 200, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `swifthomes_guard_decisions_total{outcome="allowed"} 1`)
	assert.Contains(t, string(body), `swifthomes_http_request_duration_seconds_count{method="GET",route="/api/auth/me",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	// Dos recorders no chocan al registrar (cada test arma su app).
	a := metrics.NewRecorder()
	b := metrics.NewRecorder()
	a.Registration("tenant")
	na, err := testutil.GatherAndCount(a.Registry(), "swifthomes_registrations_total")
	require.NoError(t, err)
	nb, err := testutil.GatherAndCount(b.Registry(), "swifthomes_registrations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, na)
	assert.Equal(t, 0, nb)
}
