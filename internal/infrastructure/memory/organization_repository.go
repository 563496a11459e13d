package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación en memoria de OrganizationRepository.
type OrganizationRepo struct {
	s *Store
}

// NewOrganizationRepository construye el repositorio sobre el store.
func NewOrganizationRepository(s *Store) *OrganizationRepo {
	return &OrganizationRepo{s: s}
}

// Create persiste una organización. Devuelve ErrDuplicate si el slug o el ID ya existen.
func (r *OrganizationRepo) Create(_ context.Context, org *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertOrg(org)
}

func (s *Store) insertOrg(org *entity.Organization) error {
	if _, ok := s.orgBySlug[org.Slug]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := s.orgs[org.ID]; ok {
		return domain.ErrDuplicate
	}
	s.orgs[org.ID] = copyOrg(org)
	s.orgBySlug[org.Slug] = org.ID
	return nil
}

// GetByID obtiene una organización por ID; (nil, nil) si no existe.
func (r *OrganizationRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyOrg(r.s.orgs[id]), nil
}

// GetBySlug obtiene una organización por subdominio; (nil, nil) si no existe.
func (r *OrganizationRepo) GetBySlug(_ context.Context, slug string) (*entity.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.orgBySlug[slug]
	if !ok {
		return nil, nil
	}
	return copyOrg(r.s.orgs[id]), nil
}

// Update reemplaza la organización (mismo ID y slug).
func (r *OrganizationRepo) Update(_ context.Context, org *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.orgs[org.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if prev.Slug != org.Slug {
		return domain.ErrInvalidInput
	}
	r.s.orgs[org.ID] = copyOrg(org)
	return nil
}

// List devuelve organizaciones por fecha de alta descendente.
func (r *OrganizationRepo) List(_ context.Context, limit, offset int) ([]*entity.Organization, error) {
	r.s.mu.RLock()
	list := make([]*entity.Organization, 0, len(r.s.orgs))
	for _, o := range r.s.orgs {
		list = append(list, copyOrg(o))
	}
	r.s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}
