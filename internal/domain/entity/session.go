package entity

import "time"

// Session identifica al actor autenticado. Hay como máximo una sesión por usuario:
// un nuevo login reemplaza la anterior.
type Session struct {
	ID             string
	UserID         string
	Email          string
	Role           Role
	Name           string
	OrganizationID string
	Authenticated  bool
	OAuthProvider  string // vacío si el login fue con password
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Expired informa si la sesión venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
