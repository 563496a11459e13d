// Package seed siembra la organización por defecto y las cuentas demo en la tabla de usuarios.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/swifthomes-api/internal/application/ports"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
	"github.com/jhoicas/swifthomes-api/pkg/logger"
)

// DemoUser cuenta demo con su password en claro (solo para sembrar y para tests).
type DemoUser struct {
	Email    string
	Password string
	Name     string
	Role     entity.Role
}

// DemoUsers cuentas demo, todas en la organización por defecto.
var DemoUsers = []DemoUser{
	{Email: "admin@swifthomes.com", Password: "admin123", Name: "Super Admin", Role: entity.RoleSuperAdmin},
	{Email: "manager@swifthomes.com", Password: "manager123", Name: "Property Manager", Role: entity.RolePropertyAdmin},
	{Email: "tenant@swifthomes.com", Password: "tenant123", Name: "Demo Tenant", Role: entity.RoleTenant},
	{Email: "concierge@swifthomes.com", Password: "concierge123", Name: "Front Desk", Role: entity.RoleConcierge},
	{Email: "provider@swifthomes.com", Password: "provider123", Name: "Service Provider", Role: entity.RoleServiceProvider},
	{Email: "vendor@swifthomes.com", Password: "vendor123", Name: "Demo Vendor", Role: entity.RoleVendor},
}

// DefaultOrganizationID ID estable de la organización por defecto, derivado del slug,
// para que sea el mismo entre reinicios y entre réplicas.
func DefaultOrganizationID(slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(slug+".swifthomes.internal")).String()
}

// DemoSeeder crea lo que falte; es idempotente.
type DemoSeeder struct {
	orgRepo     repository.OrganizationRepository
	userRepo    repository.UserRepository
	hasher      ports.PasswordHasher
	defaultSlug string
	log         *logger.Logger
}

// NewDemoSeeder construye el seeder.
func NewDemoSeeder(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository, hasher ports.PasswordHasher, defaultSlug string, log *logger.Logger) *DemoSeeder {
	if log == nil {
		log = logger.Nop()
	}
	return &DemoSeeder{orgRepo: orgRepo, userRepo: userRepo, hasher: hasher, defaultSlug: defaultSlug, log: log}
}

// EnsureDefaultOrganization crea la organización por defecto si no existe y la devuelve.
func (s *DemoSeeder) EnsureDefaultOrganization(ctx context.Context) (*entity.Organization, error) {
	org, err := s.orgRepo.GetBySlug(ctx, s.defaultSlug)
	if err != nil {
		return nil, fmt.Errorf("buscar organización por defecto: %w", err)
	}
	if org != nil {
		return org, nil
	}
	plan, _ := entity.FindPlan(entity.PlanEnterprise)
	now := time.Now().UTC()
	org = &entity.Organization{
		ID:        DefaultOrganizationID(s.defaultSlug),
		Name:      "SwiftHomes Demo",
		Slug:      s.defaultSlug,
		Plan:      plan.Code,
		PlanPrice: decimal.Zero,
		Status:    entity.OrganizationStatusActive,
		Currency:  "USD",
		Timezone:  "America/New_York",
		Address:   "100 Demo Street",
		Branding:  entity.Branding{PrimaryColor: "#2563eb"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("crear organización por defecto: %w", err)
	}
	s.log.Info().Str("organization_id", org.ID).Str("slug", org.Slug).Msg("organización por defecto creada")
	return org, nil
}

// Run asegura la organización por defecto y las cuentas demo.
func (s *DemoSeeder) Run(ctx context.Context) error {
	org, err := s.EnsureDefaultOrganization(ctx)
	if err != nil {
		return err
	}
	created := 0
	for _, du := range DemoUsers {
		existing, err := s.userRepo.GetByEmail(ctx, du.Email)
		if err != nil {
			return fmt.Errorf("buscar usuario demo %s: %w", du.Email, err)
		}
		if existing != nil {
			continue
		}
		hash, err := s.hasher.Hash(du.Password)
		if err != nil {
			return fmt.Errorf("hash usuario demo: %w", err)
		}
		now := time.Now().UTC()
		u := &entity.User{
			ID:             uuid.New().String(),
			OrganizationID: org.ID,
			Email:          du.Email,
			PasswordHash:   hash,
			Name:           du.Name,
			Role:           du.Role,
			Status:         entity.UserStatusActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("crear usuario demo %s: %w", du.Email, err)
		}
		created++
	}
	s.log.Info().Int("created", created).Msg("usuarios demo sembrados")
	return nil
}
