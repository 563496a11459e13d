package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Organization.
const (
	OrganizationStatusActive    = "active"
	OrganizationStatusSuspended = "suspended"
	OrganizationStatusCancelled = "cancelled"
)

// Branding personalización visual de la organización.
type Branding struct {
	LogoURL      string `json:"logo_url,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`
}

// Organization representa un tenant de la plataforma (empresa administradora de propiedades).
type Organization struct {
	ID        string
	Name      string
	Slug      string // subdominio: <slug>.<BASE_DOMAIN>
	Domain    string
	Plan      string
	PlanPrice decimal.Decimal // precio mensual capturado al elegir el plan
	Status    string          // active, suspended, cancelled
	Currency  string          // ISO 4217
	Timezone  string          // IANA
	Address   string
	Branding  Branding
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive informa si los usuarios de la organización pueden iniciar sesión.
func (o *Organization) IsActive() bool {
	return o != nil && o.Status == OrganizationStatusActive
}

// Plan elemento del catálogo de planes.
type Plan struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	MaxBuildings int             `json:"max_buildings"` // 0 = ilimitado
}

// Planes disponibles.
const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// PlanCatalog catálogo fijo de planes, en orden de presentación.
var PlanCatalog = []Plan{
	{Code: PlanStarter, Name: "Starter", MonthlyPrice: decimal.RequireFromString("49.00"), MaxBuildings: 2},
	{Code: PlanProfessional, Name: "Professional", MonthlyPrice: decimal.RequireFromString("149.00"), MaxBuildings: 10},
	{Code: PlanEnterprise, Name: "Enterprise", MonthlyPrice: decimal.RequireFromString("499.00"), MaxBuildings: 0},
}

// FindPlan busca un plan por código.
func FindPlan(code string) (Plan, bool) {
	for _, p := range PlanCatalog {
		if p.Code == code {
			return p, true
		}
	}
	return Plan{}, false
}
