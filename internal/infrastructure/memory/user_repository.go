package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio sobre el store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

// Create persiste un nuevo usuario. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertUser(user)
}

func (s *Store) insertUser(user *entity.User) error {
	if _, ok := s.userByEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	if _, ok := s.users[user.ID]; ok {
		return domain.ErrDuplicate
	}
	s.users[user.ID] = copyUser(user)
	s.userByEmail[user.Email] = user.ID
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyUser(r.s.users[id]), nil
}

// GetByEmail obtiene un usuario por email exacto; (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.userByEmail[email]
	if !ok {
		return nil, nil
	}
	return copyUser(r.s.users[id]), nil
}

// Update reemplaza el usuario (mismo ID). El email no cambia de dueño.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if prev.Email != user.Email {
		if _, taken := r.s.userByEmail[user.Email]; taken {
			return domain.ErrEmailAlreadyExists
		}
		delete(r.s.userByEmail, prev.Email)
		r.s.userByEmail[user.Email] = user.ID
	}
	r.s.users[user.ID] = copyUser(user)
	return nil
}

// ListByOrganization lista usuarios de la organización por fecha de alta descendente.
func (r *UserRepo) ListByOrganization(_ context.Context, organizationID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	var list []*entity.User
	for _, u := range r.s.users {
		if u.OrganizationID == organizationID {
			list = append(list, copyUser(u))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
