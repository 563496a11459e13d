package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/guard"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
)

// Locals keys de la sesión en Fiber.
const (
	LocalSession        = "session"
	LocalUserID         = "user_id"
	LocalRole           = "role"
	LocalOrganizationID = "organization_id"
)

// sessionLoader lo implementa *auth.AuthUseCase.
type sessionLoader interface {
	CurrentSession(ctx context.Context, token string) (*entity.Session, error)
}

// TokenFromRequest devuelve el token de sesión: primero Authorization: Bearer, luego la cookie.
func TokenFromRequest(c *fiber.Ctx, cookieName string) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	return c.Cookies(cookieName)
}

// AuthMiddleware carga la sesión del servidor a partir del token y la deja en c.Locals.
// Sin token o con sesión inválida responde 401 con redirect a /auth/login.
func AuthMiddleware(sessions sessionLoader, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c, cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:     "MISSING_TOKEN",
				Message:  "sesión requerida",
				Redirect: access.LoginRoute,
			})
		}
		session, err := sessions.CurrentSession(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code:     "INVALID_TOKEN",
					Message:  "sesión inválida o expirada",
					Redirect: access.LoginRoute,
				})
			}
			return respondError(c, err)
		}
		setSession(c, session)
		return c.Next()
	}
}

// RequireRole autoriza por rol. Debe usarse DESPUÉS de AuthMiddleware.
// Rol fuera de la lista: 403 FORBIDDEN, distinto del 401 de falta de sesión.
func RequireRole(g *guard.Guard, roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := g.Authorize(GetSession(c), roles...); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

func setSession(c *fiber.Ctx, s *entity.Session) {
	c.Locals(LocalSession, s)
	c.Locals(LocalUserID, s.UserID)
	c.Locals(LocalRole, string(s.Role))
	c.Locals(LocalOrganizationID, s.OrganizationID)
}

// GetSession devuelve la sesión del contexto (nil si no pasó por AuthMiddleware).
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetOrganizationID devuelve el organization_id de la sesión ("" para la organización por defecto).
func GetOrganizationID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalOrganizationID).(string)
	return s
}
