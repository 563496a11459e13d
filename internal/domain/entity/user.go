package entity

import "time"

// Role tipo de actor de la plataforma; determina rutas visibles y datos accesibles.
type Role string

// Roles válidos para User.
const (
	RoleSuperAdmin      Role = "super_admin"
	RolePropertyAdmin   Role = "property_admin"
	RoleTenant          Role = "tenant"
	RoleServiceProvider Role = "service_provider"
	RoleConcierge       Role = "concierge"
	RoleVendor          Role = "vendor"
)

// AllRoles lista los roles en orden estable.
var AllRoles = []Role{
	RoleSuperAdmin,
	RolePropertyAdmin,
	RoleTenant,
	RoleServiceProvider,
	RoleConcierge,
	RoleVendor,
}

// ParseRole convierte un string en Role; ok=false si no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Estados de User.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa una cuenta de la plataforma. El email es la clave única (sensible a mayúsculas).
type User struct {
	ID             string
	OrganizationID string // vacío = organización por defecto (usuarios demo)
	Email          string
	PasswordHash   string // argon2id o bcrypt; nunca el password plano
	Name           string
	Phone          string
	Role           Role
	Status         string // active, inactive, suspended
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
