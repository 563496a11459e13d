package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/swifthomes-api/internal/application/auth"
	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
)

// CookieConfig cookie que transporta el token de sesión para navegadores.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler maneja registro, login, logout y sesión actual.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Un property_admin sin organization_id inicia el onboarding de su empresa (202).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, name, role, password, confirm_password"
// @Success      201   {object}  dto.RegisterResponse
// @Success      202   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	if out.OnboardingDraftID != "" {
		return c.Status(fiber.StatusAccepted).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el token, la sesión y la ruta de aterrizaje del rol. También fija la cookie de sesión.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	if h.cookie.Name != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookie.Name,
			Value:    out.Token,
			Path:     "/",
			Expires:  out.Session.ExpiresAt,
			Secure:   h.cookie.Secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if s := GetSession(c); s != nil {
		if err := h.uc.Logout(c.UserContext(), s.ID); err != nil {
			return respondError(c, err)
		}
	}
	if h.cookie.Name != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookie.Name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			Secure:   h.cookie.Secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Sesión actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(auth.ToSessionResponse(GetSession(c)))
}

// Navigation godoc
// @Summary      Navegación del usuario actual
// @Description  Ruta de aterrizaje y entradas de navegación del rol de la sesión.
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.NavigationResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/access/navigation [get]
func (h *AuthHandler) Navigation(c *fiber.Ctx) error {
	s := GetSession(c)
	return c.JSON(dto.NavigationResponse{
		Role:       string(s.Role),
		Landing:    access.LandingRouteFor(s.Role),
		Navigation: access.NavigationRoutesFor(s.Role),
	})
}
