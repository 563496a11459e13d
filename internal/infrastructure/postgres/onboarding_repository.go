package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

var _ repository.OnboardingDraftRepository = (*OnboardingDraftRepo)(nil)

const draftColumns = `id, state, admin_email, admin_name, admin_phone, admin_password_hash,
	company_name, address, currency, timezone, slug, plan, created_at, updated_at, expires_at`

// OnboardingDraftRepo borradores de onboarding sobre PostgreSQL.
type OnboardingDraftRepo struct {
	db Querier
}

// NewOnboardingDraftRepository construye el adaptador.
func NewOnboardingDraftRepository(db Querier) *OnboardingDraftRepo {
	return &OnboardingDraftRepo{db: db}
}

// Save crea o reemplaza el borrador.
func (r *OnboardingDraftRepo) Save(ctx context.Context, d *entity.OnboardingDraft) error {
	query := `
		INSERT INTO onboarding_drafts (` + draftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state, company_name = EXCLUDED.company_name, address = EXCLUDED.address,
			currency = EXCLUDED.currency, timezone = EXCLUDED.timezone, slug = EXCLUDED.slug,
			plan = EXCLUDED.plan, updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query,
		d.ID, string(d.State), d.AdminEmail, d.AdminName, d.AdminPhone, d.AdminPasswordHash,
		d.CompanyName, d.Address, d.Currency, d.Timezone, d.Slug, d.Plan, d.CreatedAt, d.UpdatedAt, d.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save onboarding draft: %w", err)
	}
	return nil
}

// GetByID obtiene un borrador; (nil, nil) si no existe.
func (r *OnboardingDraftRepo) GetByID(ctx context.Context, id string) (*entity.OnboardingDraft, error) {
	if !validID(id) {
		return nil, nil
	}
	var (
		d     entity.OnboardingDraft
		state string
	)
	err := r.db.QueryRow(ctx, `SELECT `+draftColumns+` FROM onboarding_drafts WHERE id = $1`, id).Scan(
		&d.ID, &state, &d.AdminEmail, &d.AdminName, &d.AdminPhone, &d.AdminPasswordHash,
		&d.CompanyName, &d.Address, &d.Currency, &d.Timezone, &d.Slug, &d.Plan, &d.CreatedAt, &d.UpdatedAt, &d.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get onboarding draft: %w", err)
	}
	d.State = entity.OnboardingState(state)
	return &d, nil
}

// Delete elimina el borrador.
func (r *OnboardingDraftRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM onboarding_drafts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete onboarding draft: %w", err)
	}
	return nil
}
