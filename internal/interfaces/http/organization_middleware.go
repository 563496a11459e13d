package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
)

// LocalOrganization key de la organización resuelta en c.Locals.
const LocalOrganization = "organization"

// organizationResolver es el contrato mínimo que necesita el middleware.
// Lo implementa *organization.Resolver; el uso de interfaz evita el import circular.
type organizationResolver interface {
	Resolve(ctx context.Context, session *entity.Session) (*entity.Organization, error)
	ResolveByHost(ctx context.Context, host string) (*entity.Organization, error)
}

// OrganizationContext resuelve la organización activa y la deja en c.Locals para los handlers.
// Con sesión usa su organization_id; sin sesión, el subdominio del host.
//
// Comportamiento:
//   - 404 Not Found → la sesión apunta a una organización que ya no existe.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func OrganizationContext(resolver organizationResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			org *entity.Organization
			err error
		)
		if s := GetSession(c); s != nil {
			org, err = resolver.Resolve(c.UserContext(), s)
		} else {
			org, err = resolver.ResolveByHost(c.UserContext(), c.Hostname())
		}
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Code:    "ORGANIZATION_NOT_FOUND",
					Message: "la organización de la sesión no existe",
				})
			}
			c.Locals(localError, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ORGANIZATION_LOOKUP_FAILED",
				Message: "no se pudo resolver la organización, intente más tarde",
			})
		}
		c.Locals(LocalOrganization, org)
		return c.Next()
	}
}

// GetOrganization devuelve la organización resuelta (nil si no pasó por OrganizationContext).
func GetOrganization(c *fiber.Ctx) *entity.Organization {
	o, _ := c.Locals(LocalOrganization).(*entity.Organization)
	return o
}
