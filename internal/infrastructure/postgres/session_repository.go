package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

const sessionColumns = `id, user_id, email, role, name, organization_id, authenticated, oauth_provider, created_at, expires_at`

// SessionRepo sesiones del servidor. sessions_user_key garantiza una sesión por usuario.
type SessionRepo struct {
	db Querier
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(db Querier) *SessionRepo {
	return &SessionRepo{db: db}
}

// Save guarda la sesión reemplazando la anterior del mismo usuario.
func (r *SessionRepo) Save(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			id = EXCLUDED.id, email = EXCLUDED.email, role = EXCLUDED.role, name = EXCLUDED.name,
			organization_id = EXCLUDED.organization_id, authenticated = EXCLUDED.authenticated,
			oauth_provider = EXCLUDED.oauth_provider, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.UserID, s.Email, string(s.Role), s.Name, nullString(s.OrganizationID), s.Authenticated,
		s.OAuthProvider, s.CreatedAt, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión; (nil, nil) si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	if !validID(id) {
		return nil, nil
	}
	var (
		s     entity.Session
		role  string
		orgID *string
	)
	err := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id).Scan(
		&s.ID, &s.UserID, &s.Email, &role, &s.Name, &orgID, &s.Authenticated, &s.OAuthProvider, &s.CreatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.Role = entity.Role(role)
	if orgID != nil {
		s.OrganizationID = *orgID
	}
	return &s, nil
}

// Delete elimina la sesión. No falla si no existe.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteByUser elimina la sesión vigente del usuario.
func (r *SessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	if !validID(userID) {
		return nil
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete session by user: %w", err)
	}
	return nil
}
