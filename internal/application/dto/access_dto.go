package dto

import "github.com/jhoicas/swifthomes-api/internal/domain/access"

// AccessCheckResponse decisión del guard para una ruta.
type AccessCheckResponse struct {
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Reason   string `json:"reason,omitempty"` // unauthenticated | forbidden | unknown_route
	Redirect string `json:"redirect,omitempty"`
}

// PageViewResponse contexto con el que se renderiza una página protegida.
type PageViewResponse struct {
	Path         string                `json:"path"`
	User         SessionResponse       `json:"user"`
	Navigation   []access.NavRoute     `json:"navigation"`
	Organization *OrganizationResponse `json:"organization,omitempty"`
}

// NavigationResponse navegación y landing del usuario actual.
type NavigationResponse struct {
	Role       string            `json:"role"`
	Landing    string            `json:"landing"`
	Navigation []access.NavRoute `json:"navigation"`
}
