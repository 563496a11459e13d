package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BrandingResponse personalización visual.
type BrandingResponse struct {
	LogoURL      string `json:"logo_url,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	Domain    string           `json:"domain,omitempty"`
	Plan      string           `json:"plan"`
	PlanPrice decimal.Decimal  `json:"plan_price"`
	Status    string           `json:"status"`
	Currency  string           `json:"currency"`
	Timezone  string           `json:"timezone"`
	Address   string           `json:"address,omitempty"`
	Branding  BrandingResponse `json:"branding"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// OrganizationListResponse lista paginada de organizaciones.
type OrganizationListResponse struct {
	Items []OrganizationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// UpdateOrganizationStatusRequest cambio de estado (super admin).
type UpdateOrganizationStatusRequest struct {
	Status string `json:"status"`
}

// FormatAmountResponse monto formateado en la moneda de la organización.
type FormatAmountResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted"`
}
