package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
)

const localError = "error"

type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden importa: el primero que coincide con errors.Is gana.
var errorMappings = []errorMapping{
	{domain.ErrMissingRequiredField, fiber.StatusBadRequest, "MISSING_REQUIRED_FIELD"},
	{domain.ErrPasswordTooShort, fiber.StatusBadRequest, "PASSWORD_TOO_SHORT"},
	{domain.ErrPasswordMismatch, fiber.StatusBadRequest, "PASSWORD_MISMATCH"},
	{domain.ErrInvalidRole, fiber.StatusBadRequest, "INVALID_ROLE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
}

// respondError traduce un error de dominio a dto.ErrorResponse. 401 y 403 sugieren volver al login.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			body := dto.ErrorResponse{Code: m.code, Message: err.Error()}
			if m.status == fiber.StatusUnauthorized || m.status == fiber.StatusForbidden {
				body.Redirect = access.LoginRoute
			}
			return c.Status(m.status).JSON(body)
		}
	}
	// El RequestLogger registra la causa.
	c.Locals(localError, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
