package organization

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
	"github.com/jhoicas/swifthomes-api/pkg/logger"
)

// UseCase administración de organizaciones (super admin) y catálogo de planes.
type UseCase struct {
	orgs     repository.OrganizationRepository
	users    repository.UserRepository
	sessions repository.SessionRepository
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(orgs repository.OrganizationRepository, users repository.UserRepository, sessions repository.SessionRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{orgs: orgs, users: users, sessions: sessions, log: log}
}

// List lista organizaciones paginadas.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.OrganizationListResponse, error) {
	page.Normalize()
	list, err := uc.orgs.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrganizationResponse, 0, len(list))
	for _, o := range list {
		items = append(items, ToOrganizationResponse(o))
	}
	return &dto.OrganizationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID obtiene una organización.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	org, err := uc.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	out := ToOrganizationResponse(org)
	return &out, nil
}

// UpdateStatus cambia el estado. Al salir de active se cierran las sesiones de sus usuarios.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OrganizationResponse, error) {
	switch status {
	case entity.OrganizationStatusActive, entity.OrganizationStatusSuspended, entity.OrganizationStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	org.Status = status
	org.UpdatedAt = time.Now().UTC()
	if err := uc.orgs.Update(ctx, org); err != nil {
		return nil, err
	}
	if status != entity.OrganizationStatusActive {
		if err := uc.revokeSessions(ctx, org.ID); err != nil {
			return nil, err
		}
	}
	uc.log.Info().Str("organization_id", org.ID).Str("status", status).Msg("estado de organización actualizado")
	out := ToOrganizationResponse(org)
	return &out, nil
}

func (uc *UseCase) revokeSessions(ctx context.Context, orgID string) error {
	const batch = 100
	for offset := 0; ; offset += batch {
		users, err := uc.users.ListByOrganization(ctx, orgID, batch, offset)
		if err != nil {
			return err
		}
		for _, u := range users {
			if err := uc.sessions.DeleteByUser(ctx, u.ID); err != nil {
				return fmt.Errorf("revocar sesión de %s: %w", u.ID, err)
			}
		}
		if len(users) < batch {
			return nil
		}
	}
}

// FormatAmount formatea un monto en la moneda de la organización indicada.
func (uc *UseCase) FormatAmount(ctx context.Context, orgID string, amount decimal.Decimal) (*dto.FormatAmountResponse, error) {
	org, err := uc.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	s, err := FormatAmount(org, amount)
	if err != nil {
		return nil, err
	}
	return &dto.FormatAmountResponse{Amount: amount, Currency: org.Currency, Formatted: s}, nil
}

// Plans devuelve el catálogo de planes.
func Plans() []dto.PlanResponse {
	out := make([]dto.PlanResponse, 0, len(entity.PlanCatalog))
	for _, p := range entity.PlanCatalog {
		out = append(out, dto.PlanResponse{Code: p.Code, Name: p.Name, MonthlyPrice: p.MonthlyPrice, MaxBuildings: p.MaxBuildings})
	}
	return out
}

// ToOrganizationResponse convierte la entidad a DTO.
func ToOrganizationResponse(o *entity.Organization) dto.OrganizationResponse {
	return dto.OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		Domain:    o.Domain,
		Plan:      o.Plan,
		PlanPrice: o.PlanPrice,
		Status:    o.Status,
		Currency:  o.Currency,
		Timezone:  o.Timezone,
		Address:   o.Address,
		Branding:  dto.BrandingResponse{LogoURL: o.Branding.LogoURL, PrimaryColor: o.Branding.PrimaryColor},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
