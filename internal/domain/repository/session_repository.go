package repository

import (
	"context"

	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
)

// SessionRepository guarda la sesión vigente de cada usuario.
// Save reemplaza cualquier sesión previa del mismo usuario.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
