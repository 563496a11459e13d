package repository

import (
	"context"

	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
)

// OnboardingDraftRepository persiste el registro de traspaso entre registro y onboarding.
type OnboardingDraftRepository interface {
	Save(ctx context.Context, draft *entity.OnboardingDraft) error
	GetByID(ctx context.Context, id string) (*entity.OnboardingDraft, error)
	Delete(ctx context.Context, id string) error
}
