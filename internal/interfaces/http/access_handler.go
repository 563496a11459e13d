package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swifthomes-api/internal/application/auth"
	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/guard"
	"github.com/jhoicas/swifthomes-api/internal/application/organization"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
	"github.com/jhoicas/swifthomes-api/pkg/config"
)

// AccessHandler rutas de página protegidas y consulta de permisos para el router del cliente.
type AccessHandler struct {
	guard         *guard.Guard
	cookieName    string
	forbiddenMode string
}

// NewAccessHandler construye el handler. forbiddenMode: config.ForbiddenModeForbidden o config.ForbiddenModeRedirect.
func NewAccessHandler(g *guard.Guard, cookieName, forbiddenMode string) *AccessHandler {
	if forbiddenMode == "" {
		forbiddenMode = config.ForbiddenModeForbidden
	}
	return &AccessHandler{guard: g, cookieName: cookieName, forbiddenMode: forbiddenMode}
}

// Check godoc
// @Summary      Verificar acceso a una ruta
// @Description  allowed=false trae reason (unauthenticated, forbidden, unknown_route) y redirect.
// @Tags         access
// @Produce      json
// @Param        path  query  string  true  "ruta de página, ej: /tenant/payments"
// @Success      200   {object}  dto.AccessCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/access/check [get]
func (h *AccessHandler) Check(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "path es requerido"})
	}
	out, err := h.guard.CheckPath(c.UserContext(), TokenFromRequest(c, h.cookieName), path)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PageGuard protege una ruta de página. Sin sesión redirige (302) a /auth/login; con rol no
// permitido responde 403 con redirect sugerido, o 302 si forbiddenMode es "redirect".
func (h *AccessHandler) PageGuard(path string) fiber.Handler {
	roles := access.AllowedRolesFor(path)
	return func(c *fiber.Ctx) error {
		session, err := h.guard.RequireRole(c.UserContext(), TokenFromRequest(c, h.cookieName), roles...)
		switch {
		case err == nil:
			setSession(c, session)
			return c.Next()
		case errors.Is(err, domain.ErrUnauthenticated):
			return c.Redirect(access.LoginRoute, fiber.StatusFound)
		case errors.Is(err, domain.ErrForbidden) && h.forbiddenMode == config.ForbiddenModeRedirect:
			return c.Redirect(access.LoginRoute, fiber.StatusFound)
		default:
			return respondError(c, err)
		}
	}
}

// Page godoc
// @Summary      Página protegida
// @Description  Contexto con el que el cliente renderiza la página: usuario, navegación y organización.
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.PageViewResponse
// @Failure      302
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /admin/dashboard [get]
func (h *AccessHandler) Page(c *fiber.Ctx) error {
	s := GetSession(c)
	out := dto.PageViewResponse{
		Path:       c.Route().Path,
		User:       auth.ToSessionResponse(s),
		Navigation: access.NavigationRoutesFor(s.Role),
	}
	if org := GetOrganization(c); org != nil {
		resp := organization.ToOrganizationResponse(org)
		out.Organization = &resp
	}
	return c.JSON(out)
}
