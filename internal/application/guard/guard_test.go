package guard_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swifthomes-api/internal/application/auth"
	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/guard"
	"github.com/jhoicas/swifthomes-api/internal/application/ports"
	"github.com/jhoicas/swifthomes-api/internal/application/seed"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/memory"
	"github.com/jhoicas/swifthomes-api/pkg/password"
)

// countingMetrics cuenta decisiones del guard por resultado.
type countingMetrics struct {
	ports.NopMetrics
	mu        sync.Mutex
	decisions map[string]int
}

func (m *countingMetrics) GuardDecision(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[outcome]++
}

func setup(t *testing.T) (*auth.AuthUseCase, *guard.Guard, *countingMetrics) {
	t.Helper()
	store := memory.NewStore()
	orgs := memory.NewOrganizationRepository(store)
	users := memory.NewUserRepository(store)
	hasher := password.NewHasher(password.Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	require.NoError(t, seed.NewDemoSeeder(orgs, users, hasher, "demo", nil).Run(context.Background()))

	uc := auth.NewAuthUseCase(auth.Deps{
		Users:         users,
		Organizations: orgs,
		Sessions:      memory.NewSessionRepository(store),
		Drafts:        memory.NewOnboardingDraftRepository(store),
		Hasher:        hasher,
	}, auth.Options{
		JWT:                     auth.JWTConfig{Secret: "guard-test-secret", ExpMinutes: 30, Issuer: "swifthomes-test"},
		DefaultOrganizationSlug: "demo",
	})
	metrics := &countingMetrics{decisions: map[string]int{}}
	return uc, guard.NewGuard(uc, metrics, nil), metrics
}

func login(t *testing.T, uc *auth.AuthUseCase, email, pass string) *dto.LoginResponse {
	t.Helper()
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: email, Password: pass})
	require.NoError(t, err)
	return out
}

func TestRequireRole_WithoutSessionIsUnauthenticated(t *testing.T) {
	_, g, metrics := setup(t)
	for _, tok := range []string{"", "garbage"} {
		_, err := g.RequireRole(context.Background(), tok, entity.RoleTenant)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.NotErrorIs(t, err, domain.ErrForbidden)
	}
	assert.Equal(t, 2, metrics.decisions[ports.GuardUnauthenticated])
}

func TestRequireRole_WrongRoleIsForbidden(t *testing.T) {
	uc, g, metrics := setup(t)
	tenant := login(t, uc, "tenant@swifthomes.com", "tenant123")

	_, err := g.RequireRole(context.Background(), tenant.Token, entity.RolePropertyAdmin, entity.RoleSuperAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, 1, metrics.decisions[ports.GuardForbidden])
}

func TestRequireRole_AllowedRoleReturnsSessionUnchanged(t *testing.T) {
	uc, g, metrics := setup(t)
	manager := login(t, uc, "manager@swifthomes.com", "manager123")

	sess, err := g.RequireRole(context.Background(), manager.Token, entity.RolePropertyAdmin, entity.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, manager.Session.ID, sess.ID)
	assert.Equal(t, entity.RolePropertyAdmin, sess.Role)
	assert.Equal(t, manager.Session.Email, sess.Email)
	assert.True(t, sess.Authenticated)
	assert.Equal(t, 1, metrics.decisions[ports.GuardAllowed])
}

func TestRequireRole_NoRolesMeansAnyAuthenticated(t *testing.T) {
	uc, g, _ := setup(t)
	vendor := login(t, uc, "vendor@swifthomes.com", "vendor123")
	sess, err := g.RequireRole(context.Background(), vendor.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendor, sess.Role)
}

func TestAuthorize_UnauthenticatedSessionRecord(t *testing.T) {
	_, g, _ := setup(t)
	err := g.Authorize(&entity.Session{Role: entity.RoleTenant, Authenticated: false}, entity.RoleTenant)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCheckPath_EveryRouteMatchesTable(t *testing.T) {
	uc, g, _ := setup(t)
	ctx := context.Background()
	for _, du := range seed.DemoUsers {
		out := login(t, uc, du.Email, du.Password)
		for _, r := range access.AllRoutes() {
			res, err := g.CheckPath(ctx, out.Token, r.Path)
			require.NoError(t, err)
			assert.Equal(t, access.Permits(du.Role, r.Path), res.Allowed, "%s %s", du.Role, r.Path)
			if !res.Allowed {
				assert.Equal(t, guard.ReasonForbidden, res.Reason)
				assert.Equal(t, access.LoginRoute, res.Redirect)
			}
		}
	}
}

func TestCheckPath_UnauthenticatedAndUnknown(t *testing.T) {
	_, g, _ := setup(t)
	ctx := context.Background()

	res, err := g.CheckPath(ctx, "", "/tenant/payments")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, guard.ReasonUnauthenticated, res.Reason)
	assert.Equal(t, access.LoginRoute, res.Redirect)

	res, err = g.CheckPath(ctx, "", "/nowhere")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, guard.ReasonUnknownRoute, res.Reason)
}
