package dto

import "time"

// RegisterRequest entrada para registro. El password se hashea en el use case.
type RegisterRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	OrganizationID  string `json:"organization_id,omitempty"`
}

// RegisterResponse salida del registro: el usuario creado, o el borrador de onboarding
// cuando un property_admin sin organización inicia el alta de su empresa.
type RegisterResponse struct {
	User              *UserResponse `json:"user,omitempty"`
	OnboardingDraftID string        `json:"onboarding_draft_id,omitempty"`
	Next              string        `json:"next"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id,omitempty"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse sesión vigente tal como la ve el cliente.
type SessionResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Name           string    `json:"name"`
	OrganizationID string    `json:"organization_id,omitempty"`
	Authenticated  bool      `json:"authenticated"`
	OAuthProvider  string    `json:"oauth_provider,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// LoginResponse token de sesión, la sesión y la ruta de aterrizaje del rol.
type LoginResponse struct {
	Token      string          `json:"token"`
	Session    SessionResponse `json:"session"`
	RedirectTo string          `json:"redirect_to"`
}
