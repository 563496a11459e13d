package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swifthomes-api/internal/application/auth"
	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/guard"
	"github.com/jhoicas/swifthomes-api/internal/application/onboarding"
	"github.com/jhoicas/swifthomes-api/internal/application/organization"
	"github.com/jhoicas/swifthomes-api/internal/application/seed"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/memory"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/swifthomes-api/internal/interfaces/http"
	"github.com/jhoicas/swifthomes-api/pkg/config"
	"github.com/jhoicas/swifthomes-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testCookieName = "swifthomes_session"
	testBaseDomain = "swifthomes.app"
)

type testServer struct {
	app     *fiber.App
	store   *memory.Store
	authUC  *auth.AuthUseCase
	guard   *guard.Guard
	metrics *metrics.Recorder
}

type serverOption func(*apphttp.RouterDeps)

func withForbiddenMode(mode string) serverOption {
	return func(d *apphttp.RouterDeps) { d.ForbiddenMode = mode }
}

func withLoginRateLimit(n int) serverOption {
	return func(d *apphttp.RouterDeps) { d.LoginRateLimit = n }
}

// newTestServer arma la aplicación completa sobre el store en memoria con los usuarios demo.
func newTestServer(t *testing.T, opts ...serverOption) testServer {
	t.Helper()
	store := memory.NewStore()
	orgs := memory.NewOrganizationRepository(store)
	users := memory.NewUserRepository(store)
	sessions := memory.NewSessionRepository(store)
	drafts := memory.NewOnboardingDraftRepository(store)
	hasher := password.NewHasher(password.Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	require.NoError(t, seed.NewDemoSeeder(orgs, users, hasher, "demo", nil).Run(context.Background()))

	rec := metrics.NewRecorder()
	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:         users,
		Organizations: orgs,
		Sessions:      sessions,
		Drafts:        drafts,
		Hasher:        hasher,
		Metrics:       rec,
	}, auth.Options{
		JWT:                     auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: "swifthomes-test"},
		DefaultOrganizationSlug: "demo",
	})
	g := guard.NewGuard(authUC, rec, nil)

	deps := apphttp.RouterDeps{
		AuthUC:         authUC,
		Guard:          g,
		Resolver:       organization.NewResolver(orgs, "demo", testBaseDomain),
		OrganizationUC: organization.NewUseCase(orgs, users, sessions, nil),
		OnboardingUC:   onboarding.NewUseCase(drafts, orgs, memory.NewTxRunner(store), rec, nil, testBaseDomain),
		Metrics:        rec,
		Cookie:         apphttp.CookieConfig{Name: testCookieName},
		ForbiddenMode:  config.ForbiddenModeForbidden,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	app := fiber.New()
	apphttp.Router(app, deps)
	return testServer{app: app, store: store, authUC: authUC, guard: g, metrics: rec}
}

func (s testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// login hace POST /api/auth/login y devuelve la respuesta decodificada.
func (s testServer) login(t *testing.T, email, pw string) dto.LoginResponse {
	t.Helper()
	resp := s.do(t, jsonRequest(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: pw}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp)
}

func demoUser(role entity.Role) seed.DemoUser {
	for _, du := range seed.DemoUsers {
		if du.Role == role {
			return du
		}
	}
	panic("sin usuario demo para " + string(role))
}

// buildMiddlewareApp aplicación mínima con AuthMiddleware + RequireRole delante de un handler dummy.
func buildMiddlewareApp(s testServer, allowed ...entity.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(s.authUC, testCookieName),
		apphttp.RequireRole(s.guard, allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c), "user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_MissingToken(t *testing.T) {
	s := newTestServer(t)
	app := buildMiddlewareApp(s)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "MISSING_TOKEN", body.Code)
	assert.Equal(t, access.LoginRoute, body.Redirect)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	s := newTestServer(t)
	app := buildMiddlewareApp(s)

	for _, header := range []string{"Bearer not-a-jwt", "Basic dXNlcjpwYXNz", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestAuthMiddleware_BearerAndCookie(t *testing.T) {
	s := newTestServer(t)
	app := buildMiddlewareApp(s)
	tenant := demoUser(entity.RoleTenant)
	out := s.login(t, tenant.Email, tenant.Password)

	resp, err := app.Test(withBearer(httptest.NewRequest(http.MethodGet, "/protected", nil), out.Token), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: out.Token})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, string(entity.RoleTenant), body["role"])
	assert.NotEmpty(t, body["user_id"])
}

// 401 sin sesión, 403 con sesión y rol no permitido.
func TestRequireRole_ForbiddenIsDistinctFromUnauthenticated(t *testing.T) {
	s := newTestServer(t)
	app := buildMiddlewareApp(s, entity.RoleSuperAdmin, entity.RolePropertyAdmin)

	tenant := demoUser(entity.RoleTenant)
	out := s.login(t, tenant.Email, tenant.Password)
	resp, err := app.Test(withBearer(httptest.NewRequest(http.MethodGet, "/protected", nil), out.Token), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "FORBIDDEN", body.Code)
	assert.Equal(t, access.LoginRoute, body.Redirect)

	admin := demoUser(entity.RolePropertyAdmin)
	out = s.login(t, admin.Email, admin.Password)
	resp, err = app.Test(withBearer(httptest.NewRequest(http.MethodGet, "/protected", nil), out.Token), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_NoRolesMeansAnySession(t *testing.T) {
	s := newTestServer(t)
	app := buildMiddlewareApp(s)
	for _, du := range seed.DemoUsers {
		out := s.login(t, du.Email, du.Password)
		resp, err := app.Test(withBearer(httptest.NewRequest(http.MethodGet, "/protected", nil), out.Token), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, du.Email)
	}
}
