package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // zonas horarias del onboarding en imágenes sin tzdata

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/swifthomes-api/docs"
	"github.com/jhoicas/swifthomes-api/internal/application/auth"
	"github.com/jhoicas/swifthomes-api/internal/application/guard"
	"github.com/jhoicas/swifthomes-api/internal/application/onboarding"
	"github.com/jhoicas/swifthomes-api/internal/application/organization"
	"github.com/jhoicas/swifthomes-api/internal/application/seed"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/metrics"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/swifthomes-api/internal/interfaces/http"
	"github.com/jhoicas/swifthomes-api/pkg/config"
	"github.com/jhoicas/swifthomes-api/pkg/logger"
	"github.com/jhoicas/swifthomes-api/pkg/password"
	"github.com/jhoicas/swifthomes-api/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer repos.Close()

	hasher := password.NewHasher(password.DefaultParams)
	if cfg.Storage.DemoSeed {
		seeder := seed.NewDemoSeeder(repos.Organizations, repos.Users, hasher, cfg.Tenancy.DefaultOrganizationSlug, log)
		if err := seeder.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("sembrar usuarios demo")
		}
	}

	recorder := metrics.NewRecorder()
	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:         repos.Users,
		Organizations: repos.Organizations,
		Sessions:      repos.Sessions,
		Drafts:        repos.Drafts,
		Hasher:        hasher,
		Metrics:       recorder,
		Log:           log,
	}, auth.Options{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		DefaultOrganizationSlug: cfg.Tenancy.DefaultOrganizationSlug,
		DraftTTL:                time.Duration(cfg.Onboarding.DraftTTLMinutes) * time.Minute,
	})
	routeGuard := guard.NewGuard(authUC, recorder, log)
	resolver := organization.NewResolver(repos.Organizations, cfg.Tenancy.DefaultOrganizationSlug, cfg.Tenancy.BaseDomain)
	organizationUC := organization.NewUseCase(repos.Organizations, repos.Users, repos.Sessions, log)
	onboardingUC := onboarding.NewUseCase(repos.Drafts, repos.Organizations, repos.Tx, recorder, log, cfg.Tenancy.BaseDomain)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log, recorder))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: docs.SwaggerJSON,
		Path:        "docs",
		Title:       "SwiftHomes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": repos.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Guard:          routeGuard,
		Resolver:       resolver,
		OrganizationUC: organizationUC,
		OnboardingUC:   onboardingUC,
		Metrics:        recorder,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		ForbiddenMode:  cfg.Session.ForbiddenMode,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
