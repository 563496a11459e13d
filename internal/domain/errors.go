package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrMissingRequiredField = errors.New("faltan campos requeridos")
	ErrPasswordTooShort     = errors.New("el password debe tener al menos 6 caracteres")
	ErrPasswordMismatch     = errors.New("los passwords no coinciden")
	ErrInvalidRole          = errors.New("rol inválido")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthenticated      = errors.New("no autenticado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInvalidTransition    = errors.New("transición de onboarding inválida")
)
