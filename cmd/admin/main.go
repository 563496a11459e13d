// Package main implementa swifthomes-admin, la CLI de operación: migraciones, datos demo y hashes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/swifthomes-api/internal/application/seed"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/storage"
	"github.com/jhoicas/swifthomes-api/pkg/config"
	"github.com/jhoicas/swifthomes-api/pkg/logger"
	"github.com/jhoicas/swifthomes-api/pkg/password"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "swifthomes-admin",
		Short: "Operación de la API de SwiftHomes",
		Long: `swifthomes-admin agrupa las tareas de operación que no pasan por HTTP.

La configuración se lee igual que en la API (variables de entorno, .env o config).`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedDemoCmd(), newHashPasswordCmd())
	return root
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "swifthomes-admin"})
	return cfg, log, nil
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			return storage.Migrate(cfg.DB, log)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revierte la última migración",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			mg, err := postgres.NewMigrator(cfg.DB, log)
			if err != nil {
				return err
			}
			defer func() { _ = mg.Close() }()
			return mg.Down()
		},
	})
	return cmd
}

func newSeedDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "Crea la organización por defecto y las cuentas demo que falten",
		Long: `Crea la organización por defecto (DEFAULT_ORGANIZATION_SLUG) y las cuentas demo.
Es idempotente: las cuentas que ya existen no se tocan.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver == config.StorageMemory {
				return fmt.Errorf("seed-demo necesita STORAGE_DRIVER=postgres; en memoria la API siembra al iniciar")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			repos, err := storage.Open(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer repos.Close()
			seeder := seed.NewDemoSeeder(repos.Organizations, repos.Users, password.NewHasher(password.DefaultParams), cfg.Tenancy.DefaultOrganizationSlug, log)
			if err := seeder.Run(ctx); err != nil {
				return err
			}
			for _, du := range seed.DemoUsers {
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-16s %s\n", du.Email, du.Role, du.Password)
			}
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <plain>",
		Short: "Imprime el hash argon2id de un password",
		Long: `Imprime el hash argon2id (formato PHC) de un password, para cargar usuarios a mano.

Ejemplo:
  swifthomes-admin hash-password 's3cret!'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := password.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
