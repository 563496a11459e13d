package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/organization"
)

// OrganizationHandler administración de organizaciones y contexto de la organización activa.
type OrganizationHandler struct {
	uc *organization.UseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *organization.UseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// List godoc
// @Summary      Listar organizaciones
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "límite (1..100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200   {object}  dto.OrganizationListResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener organización
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la organización"
// @Success      200   {object}  dto.OrganizationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una organización
// @Description  suspended o cancelled cierran las sesiones de sus usuarios e impiden el login.
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la organización"
// @Param        body  body  dto.UpdateOrganizationStatusRequest  true  "active | suspended | cancelled"
// @Success      200   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/organizations/{id}/status [patch]
func (h *OrganizationHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrganizationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Organización activa
// @Description  Con sesión, la organización del usuario; sin sesión, la del subdominio (branding previo al login).
// @Tags         organizations
// @Produce      json
// @Success      200   {object}  dto.OrganizationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/organization [get]
func (h *OrganizationHandler) Current(c *fiber.Ctx) error {
	org := GetOrganization(c)
	if org == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORGANIZATION_NOT_FOUND", Message: "sin organización en contexto"})
	}
	return c.JSON(organization.ToOrganizationResponse(org))
}

// FormatAmount godoc
// @Summary      Formatear monto en la moneda de la organización activa
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        amount  query  string  true  "monto decimal, ej: 1234.50"
// @Success      200   {object}  dto.FormatAmountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/organization/format-amount [get]
func (h *OrganizationHandler) FormatAmount(c *fiber.Ctx) error {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount debe ser un número decimal"})
	}
	org := GetOrganization(c)
	if org == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORGANIZATION_NOT_FOUND", Message: "sin organización en contexto"})
	}
	out, err := h.uc.FormatAmount(c.UserContext(), org.ID, amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Plans godoc
// @Summary      Catálogo de planes
// @Tags         onboarding
// @Produce      json
// @Success      200   {array}  dto.PlanResponse
// @Router       /api/plans [get]
func (h *OrganizationHandler) Plans(c *fiber.Ctx) error {
	return c.JSON(organization.Plans())
}
