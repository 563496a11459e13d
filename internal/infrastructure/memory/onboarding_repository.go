package memory

import (
	"context"

	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

var _ repository.OnboardingDraftRepository = (*OnboardingDraftRepo)(nil)

// OnboardingDraftRepo implementación en memoria de OnboardingDraftRepository.
type OnboardingDraftRepo struct {
	s *Store
}

// NewOnboardingDraftRepository construye el repositorio sobre el store.
func NewOnboardingDraftRepository(s *Store) *OnboardingDraftRepo {
	return &OnboardingDraftRepo{s: s}
}

// Save crea o reemplaza el borrador.
func (r *OnboardingDraftRepo) Save(_ context.Context, draft *entity.OnboardingDraft) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.drafts[draft.ID] = copyDraft(draft)
	return nil
}

// GetByID obtiene un borrador; (nil, nil) si no existe.
func (r *OnboardingDraftRepo) GetByID(_ context.Context, id string) (*entity.OnboardingDraft, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyDraft(r.s.drafts[id]), nil
}

// Delete elimina el borrador.
func (r *OnboardingDraftRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.drafts, id)
	return nil
}
