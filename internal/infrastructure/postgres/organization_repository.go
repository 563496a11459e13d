package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

const orgColumns = `id, name, slug, domain, plan, plan_price, status, currency, timezone, address, logo_url, primary_color, created_at, updated_at`

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	db Querier
}

// NewOrganizationRepository construye el adaptador; db puede ser el pool o una tx.
func NewOrganizationRepository(db Querier) *OrganizationRepo {
	return &OrganizationRepo{db: db}
}

// Create persiste una organización. Slug repetido → ErrDuplicate.
func (r *OrganizationRepo) Create(ctx context.Context, o *entity.Organization) error {
	query := `INSERT INTO organizations (` + orgColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.Name, o.Slug, o.Domain, o.Plan, o.PlanPrice, o.Status, o.Currency, o.Timezone, o.Address,
		o.Branding.LogoURL, o.Branding.PrimaryColor, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID; (nil, nil) si no existe.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	if !validID(id) {
		return nil, nil
	}
	row := r.db.QueryRow(ctx, `SELECT `+orgColumns+` FROM organizations WHERE id = $1`, id)
	return scanOrgRow(row, "get organization by id")
}

// GetBySlug obtiene una organización por subdominio; (nil, nil) si no existe.
func (r *OrganizationRepo) GetBySlug(ctx context.Context, slug string) (*entity.Organization, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orgColumns+` FROM organizations WHERE slug = $1`, slug)
	return scanOrgRow(row, "get organization by slug")
}

// Update actualiza la organización. El slug no cambia.
func (r *OrganizationRepo) Update(ctx context.Context, o *entity.Organization) error {
	query := `
		UPDATE organizations SET name = $2, domain = $3, plan = $4, plan_price = $5, status = $6,
			currency = $7, timezone = $8, address = $9, logo_url = $10, primary_color = $11, updated_at = $12
		WHERE id = $1 AND slug = $13`
	tag, err := r.db.Exec(ctx, query,
		o.ID, o.Name, o.Domain, o.Plan, o.PlanPrice, o.Status, o.Currency, o.Timezone, o.Address,
		o.Branding.LogoURL, o.Branding.PrimaryColor, o.UpdatedAt, o.Slug,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista organizaciones por fecha de alta descendente.
func (r *OrganizationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Organization, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orgColumns+` FROM organizations ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Organization
	for rows.Next() {
		o, err := scanOrg(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrgRow(row pgx.Row, op string) (*entity.Organization, error) {
	o, err := scanOrg(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func scanOrg(row pgx.Row) (*entity.Organization, error) {
	var o entity.Organization
	err := row.Scan(
		&o.ID, &o.Name, &o.Slug, &o.Domain, &o.Plan, &o.PlanPrice, &o.Status, &o.Currency, &o.Timezone,
		&o.Address, &o.Branding.LogoURL, &o.Branding.PrimaryColor, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
