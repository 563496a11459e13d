package memory

import (
	"context"

	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación en memoria de SessionRepository.
type SessionRepo struct {
	s *Store
}

// NewSessionRepository construye el repositorio sobre el store.
func NewSessionRepository(s *Store) *SessionRepo {
	return &SessionRepo{s: s}
}

// Save guarda la sesión y descarta la sesión previa del mismo usuario.
func (r *SessionRepo) Save(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if prev, ok := r.s.sessionOfUsr[session.UserID]; ok && prev != session.ID {
		delete(r.s.sessions, prev)
	}
	r.s.sessions[session.ID] = copySession(session)
	r.s.sessionOfUsr[session.UserID] = session.ID
	return nil
}

// GetByID obtiene una sesión; (nil, nil) si no existe.
func (r *SessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copySession(r.s.sessions[id]), nil
}

// Delete elimina la sesión (logout). No falla si no existe.
func (r *SessionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sess, ok := r.s.sessions[id]; ok {
		if r.s.sessionOfUsr[sess.UserID] == id {
			delete(r.s.sessionOfUsr, sess.UserID)
		}
		delete(r.s.sessions, id)
	}
	return nil
}

// DeleteByUser elimina la sesión vigente del usuario.
func (r *SessionRepo) DeleteByUser(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if id, ok := r.s.sessionOfUsr[userID]; ok {
		delete(r.s.sessions, id)
		delete(r.s.sessionOfUsr, userID)
	}
	return nil
}
