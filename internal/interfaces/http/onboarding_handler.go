package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/onboarding"
)

// OnboardingHandler pasos del alta de una empresa. El ID del borrador lo entrega el registro.
type OnboardingHandler struct {
	uc *onboarding.UseCase
}

// NewOnboardingHandler construye el handler.
func NewOnboardingHandler(uc *onboarding.UseCase) *OnboardingHandler {
	return &OnboardingHandler{uc: uc}
}

// Get godoc
// @Summary      Estado del onboarding
// @Tags         onboarding
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200   {object}  dto.OnboardingDraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/onboarding/{id} [get]
func (h *OnboardingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitCompanyInfo godoc
// @Summary      Datos de la empresa
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.CompanyInfoRequest  true  "name, address, currency, timezone"
// @Success      200   {object}  dto.OnboardingDraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/{id}/company [post]
func (h *OnboardingHandler) SubmitCompanyInfo(c *fiber.Ctx) error {
	var in dto.CompanyInfoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SubmitCompanyInfo(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChooseDomain godoc
// @Summary      Elegir subdominio
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.ChooseDomainRequest  true  "slug"
// @Success      200   {object}  dto.OnboardingDraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/{id}/domain [post]
func (h *OnboardingHandler) ChooseDomain(c *fiber.Ctx) error {
	var in dto.ChooseDomainRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChooseDomain(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChoosePlan godoc
// @Summary      Elegir plan
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.ChoosePlanRequest  true  "starter | professional | enterprise"
// @Success      200   {object}  dto.OnboardingDraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/{id}/plan [post]
func (h *OnboardingHandler) ChoosePlan(c *fiber.Ctx) error {
	var in dto.ChoosePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChoosePlan(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Back godoc
// @Summary      Volver un paso
// @Tags         onboarding
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200   {object}  dto.OnboardingDraftResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/{id}/back [post]
func (h *OnboardingHandler) Back(c *fiber.Ctx) error {
	out, err := h.uc.Back(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar onboarding
// @Description  Crea la organización y su administrador en una sola transacción.
// @Tags         onboarding
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      201   {object}  dto.OnboardingCompleteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/{id}/complete [post]
func (h *OnboardingHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
