package onboarding

import (
	"context"

	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda escrita ni la organización ni el usuario.
type TxRunner interface {
	RunOnboarding(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		userRepo repository.UserRepository,
	) error) error
}
