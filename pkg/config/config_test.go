package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/swifthomes-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "swifthomes-api", cfg.App.Name)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver, "development usa memoria por defecto")
	assert.True(t, cfg.Storage.DemoSeed)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "swifthomes_session", cfg.Session.CookieName)
	assert.Equal(t, config.ForbiddenModeForbidden, cfg.Session.ForbiddenMode)
	assert.Equal(t, "demo", cfg.Tenancy.DefaultOrganizationSlug)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_ModoRedirect(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("APP_ENV", "development")
	t.Setenv("GUARD_FORBIDDEN_MODE", "redirect")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.ForbiddenModeRedirect, cfg.Session.ForbiddenMode)

	t.Setenv("GUARD_FORBIDDEN_MODE", "login")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("GUARD_FORBIDDEN_MODE", "redirect")
	t.Setenv("DEMO_SEED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.ForbiddenModeRedirect, cfg.Session.ForbiddenMode)
	assert.False(t, cfg.Storage.DemoSeed)
	assert.True(t, cfg.Session.CookieSecure, "en production la cookie es Secure")
}

func TestLoad_SinSecretFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("STORAGE_DRIVER", "localstorage")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "swifthomes", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/swifthomes?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
