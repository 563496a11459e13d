package organization_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/organization"
	"github.com/jhoicas/swifthomes-api/internal/application/seed"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/memory"
	"github.com/jhoicas/swifthomes-api/pkg/password"
)

type env struct {
	store    *memory.Store
	orgs     *memory.OrganizationRepo
	users    *memory.UserRepo
	sessions *memory.SessionRepo
	resolver *organization.Resolver
	uc       *organization.UseCase
	acme     *entity.Organization
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	orgs := memory.NewOrganizationRepository(store)
	users := memory.NewUserRepository(store)
	sessions := memory.NewSessionRepository(store)
	hasher := password.NewHasher(password.Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	require.NoError(t, seed.NewDemoSeeder(orgs, users, hasher, "demo", nil).Run(ctx))

	acme := &entity.Organization{
		ID:        "11111111-1111-1111-1111-111111111111",
		Name:      "Acme Properties",
		Slug:      "acme",
		Plan:      entity.PlanStarter,
		PlanPrice: decimal.RequireFromString("49.00"),
		Status:    entity.OrganizationStatusActive,
		Currency:  "EUR",
		Timezone:  "Europe/Madrid",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, orgs.Create(ctx, acme))

	return env{
		store:    store,
		orgs:     orgs,
		users:    users,
		sessions: sessions,
		resolver: organization.NewResolver(orgs, "demo", "swifthomes.app"),
		uc:       organization.NewUseCase(orgs, users, sessions, nil),
		acme:     acme,
	}
}

func TestResolve_SessionWithoutOrganizationUsesDefault(t *testing.T) {
	e := newEnv(t)
	org, err := e.resolver.Resolve(context.Background(), &entity.Session{Role: entity.RoleTenant})
	require.NoError(t, err)
	assert.Equal(t, "demo", org.Slug)
	assert.Equal(t, seed.DefaultOrganizationID("demo"), org.ID)
}

func TestResolve_SessionOrganization(t *testing.T) {
	e := newEnv(t)
	org, err := e.resolver.Resolve(context.Background(), &entity.Session{OrganizationID: e.acme.ID})
	require.NoError(t, err)
	assert.Equal(t, "acme", org.Slug)
}

func TestResolve_MissingOrganizationIsNotFound(t *testing.T) {
	e := newEnv(t)
	_, err := e.resolver.Resolve(context.Background(), &entity.Session{OrganizationID: "gone"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveByHost(t *testing.T) {
	e := newEnv(t)
	cases := []struct {
		host string
		slug string
	}{
		{"acme.swifthomes.app", "acme"},
		{"ACME.swifthomes.app:443", "acme"},
		{"unknown.swifthomes.app", "demo"},
		{"a.b.swifthomes.app", "demo"},
		{"swifthomes.app", "demo"},
		{"localhost:3000", "demo"},
	}
	for _, tc := range cases {
		org, err := e.resolver.ResolveByHost(context.Background(), tc.host)
		require.NoError(t, err, tc.host)
		assert.Equal(t, tc.slug, org.Slug, tc.host)
	}
}

func TestFormatAmount(t *testing.T) {
	s, err := organization.FormatAmount(&entity.Organization{Currency: "USD"}, decimal.RequireFromString("1234.5"))
	require.NoError(t, err)
	assert.Equal(t, "$ 1,234.50", s)

	_, err = organization.FormatAmount(&entity.Organization{Currency: "XX1"}, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormatAmount_ExactDecimal(t *testing.T) {
	cases := []struct {
		currency, amount, want string
	}{
		{"USD", "12345678901234567.89", "$ 12,345,678,901,234,567.89"},
		{"USD", "0.1", "$ 0.10"},
		{"USD", "-1234.5", "$ -1,234.50"},
		{"USD", "-0.001", "$ 0.00"},
		{"USD", "999.995", "$ 1,000.00"},
		{"JPY", "1234.56", "¥ 1,235"},
		{"", "7", "$ 7.00"},
	}
	for _, tc := range cases {
		t.Run(tc.currency+" "+tc.amount, func(t *testing.T) {
			got, err := organization.FormatAmount(&entity.Organization{Currency: tc.currency}, decimal.RequireFromString(tc.amount))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatAmount_OutOfRange(t *testing.T) {
	_, err := organization.FormatAmount(nil, decimal.RequireFromString("123456789012345678901234"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUseCase_ListAndGet(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	list, err := e.uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 20, list.Page.Limit)

	got, err := e.uc.GetByID(ctx, e.acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Properties", got.Name)
	assert.True(t, decimal.RequireFromString("49").Equal(got.PlanPrice))

	_, err = e.uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseCase_UpdateStatusRevokesSessions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tenant, err := e.users.GetByEmail(ctx, "tenant@swifthomes.com")
	require.NoError(t, err)
	require.NoError(t, e.sessions.Save(ctx, &entity.Session{ID: "s-1", UserID: tenant.ID, Role: tenant.Role, Authenticated: true}))

	out, err := e.uc.UpdateStatus(ctx, seed.DefaultOrganizationID("demo"), entity.OrganizationStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, entity.OrganizationStatusSuspended, out.Status)

	sess, err := e.sessions.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, sess)

	_, err = e.uc.UpdateStatus(ctx, e.acme.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlans(t *testing.T) {
	plans := organization.Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, entity.PlanStarter, plans[0].Code)
	assert.True(t, decimal.RequireFromString("149.00").Equal(plans[1].MonthlyPrice))
}
