// Package storage elige el adaptador de persistencia según STORAGE_DRIVER y entrega los repositorios.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/swifthomes-api/internal/application/onboarding"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/memory"
	"github.com/jhoicas/swifthomes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/swifthomes-api/pkg/config"
	"github.com/jhoicas/swifthomes-api/pkg/logger"
)

// Repositories repositorios y runner transaccional de un mismo backend.
type Repositories struct {
	Driver        string
	Organizations repository.OrganizationRepository
	Users         repository.UserRepository
	Sessions      repository.SessionRepository
	Drafts        repository.OnboardingDraftRepository
	Tx            onboarding.TxRunner

	close func()
}

// Close libera el pool (no-op en memoria).
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open abre el backend configurado. Con postgres y DB_AUTO_MIGRATE aplica las migraciones antes.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		return &Repositories{
			Driver:        config.StorageMemory,
			Organizations: memory.NewOrganizationRepository(store),
			Users:         memory.NewUserRepository(store),
			Sessions:      memory.NewSessionRepository(store),
			Drafts:        memory.NewOnboardingDraftRepository(store),
			Tx:            memory.NewTxRunner(store),
		}, nil

	case config.StoragePostgres:
		if cfg.DB.AutoMigrate {
			if err := Migrate(cfg.DB, log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Repositories{
			Driver:        config.StoragePostgres,
			Organizations: postgres.NewOrganizationRepository(pool),
			Users:         postgres.NewUserRepository(pool),
			Sessions:      postgres.NewSessionRepository(pool),
			Drafts:        postgres.NewOnboardingDraftRepository(pool),
			Tx:            postgres.NewTxRunner(pool),
			close:         pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("STORAGE_DRIVER inválido: %q", cfg.Storage.Driver)
	}
}

// Migrate aplica las migraciones pendientes.
func Migrate(cfg config.DBConfig, log *logger.Logger) error {
	mg, err := postgres.NewMigrator(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = mg.Close() }()
	return mg.Up()
}
