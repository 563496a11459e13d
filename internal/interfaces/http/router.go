package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/swifthomes-api/internal/application/auth"
	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/guard"
	"github.com/jhoicas/swifthomes-api/internal/application/onboarding"
	"github.com/jhoicas/swifthomes-api/internal/application/organization"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Guard          *guard.Guard
	Resolver       *organization.Resolver
	OrganizationUC *organization.UseCase
	OnboardingUC   *onboarding.UseCase
	Metrics        *metrics.Recorder // nil = sin /metrics
	Cookie         CookieConfig
	ForbiddenMode  string
	LoginRateLimit int // peticiones por minuto e IP; 0 = sin límite
}

// Router registra las rutas de la API y las páginas protegidas.
func Router(app *fiber.App, deps RouterDeps) {
	requireSession := AuthMiddleware(deps.AuthUC, deps.Cookie.Name)
	orgContext := OrganizationContext(deps.Resolver)

	api := app.Group("/api")

	// Auth (público, con rate limit)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := api.Group("/auth")
	credentials := []fiber.Handler{}
	if deps.LoginRateLimit > 0 {
		credentials = append(credentials, loginLimiter(deps.LoginRateLimit))
	}
	authGroup.Post("/register", append(credentials, authHandler.Register)...)
	authGroup.Post("/login", append(credentials, authHandler.Login)...)
	authGroup.Post("/logout", requireSession, authHandler.Logout)
	authGroup.Get("/me", requireSession, authHandler.Me)

	// Access
	accessHandler := NewAccessHandler(deps.Guard, deps.Cookie.Name, deps.ForbiddenMode)
	accessGroup := api.Group("/access")
	accessGroup.Get("/check", accessHandler.Check)
	accessGroup.Get("/navigation", requireSession, authHandler.Navigation)

	// Organización activa (branding por subdominio sin sesión) y planes
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	api.Get("/plans", orgHandler.Plans)
	api.Get("/organization", optionalSession(deps.AuthUC, deps.Cookie.Name), orgContext, orgHandler.Current)
	api.Get("/organization/format-amount", requireSession, orgContext, orgHandler.FormatAmount)

	// Administración de organizaciones (solo super_admin)
	orgs := api.Group("/organizations", requireSession, RequireRole(deps.Guard, entity.RoleSuperAdmin))
	orgs.Get("/", orgHandler.List)
	orgs.Get("/:id", orgHandler.GetByID)
	orgs.Patch("/:id/status", orgHandler.UpdateStatus)

	// Onboarding (el ID del borrador lo entrega /api/auth/register)
	onboardingHandler := NewOnboardingHandler(deps.OnboardingUC)
	ob := api.Group("/onboarding")
	ob.Get("/:id", onboardingHandler.Get)
	ob.Post("/:id/company", onboardingHandler.SubmitCompanyInfo)
	ob.Post("/:id/domain", onboardingHandler.ChooseDomain)
	ob.Post("/:id/plan", onboardingHandler.ChoosePlan)
	ob.Post("/:id/back", onboardingHandler.Back)
	ob.Post("/:id/complete", onboardingHandler.Complete)

	// Páginas protegidas por rol
	seen := map[string]bool{}
	for _, r := range access.AllRoutes() {
		if seen[r.Path] {
			continue
		}
		seen[r.Path] = true
		app.Get(r.Path, accessHandler.PageGuard(r.Path), orgContext, accessHandler.Page)
	}

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}
}

// optionalSession carga la sesión si el token es válido; si no, sigue sin ella.
func optionalSession(sessions sessionLoader, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := TokenFromRequest(c, cookieName); token != "" {
			if s, err := sessions.CurrentSession(c.UserContext(), token); err == nil {
				setSession(c, s)
			}
		}
		return c.Next()
	}
}

func loginLimiter(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiados intentos, espera un minuto",
			})
		},
	})
}
