package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyInfoRequest etapa collecting_company_info.
type CompanyInfoRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Currency string `json:"currency"`
	Timezone string `json:"timezone"`
}

// ChooseDomainRequest etapa choosing_domain.
type ChooseDomainRequest struct {
	Slug string `json:"slug"`
}

// ChoosePlanRequest etapa choosing_plan.
type ChoosePlanRequest struct {
	Plan string `json:"plan"`
}

// OnboardingDraftResponse estado actual del onboarding (sin hash de password).
type OnboardingDraftResponse struct {
	ID          string    `json:"id"`
	State       string    `json:"state"`
	AdminEmail  string    `json:"admin_email"`
	AdminName   string    `json:"admin_name"`
	CompanyName string    `json:"company_name,omitempty"`
	Address     string    `json:"address,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Timezone    string    `json:"timezone,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	Plan        string    `json:"plan,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// OnboardingCompleteResponse organización y administrador creados.
type OnboardingCompleteResponse struct {
	Organization OrganizationResponse `json:"organization"`
	User         UserResponse         `json:"user"`
	RedirectTo   string               `json:"redirect_to"`
}

// PlanResponse elemento del catálogo de planes.
type PlanResponse struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	MaxBuildings int             `json:"max_buildings"`
}
