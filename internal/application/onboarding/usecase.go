// Package onboarding implementa el alta guiada de una empresa y su primer administrador.
package onboarding

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/currency"

	"github.com/jhoicas/swifthomes-api/internal/application/auth"
	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/organization"
	"github.com/jhoicas/swifthomes-api/internal/application/ports"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
	"github.com/jhoicas/swifthomes-api/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/swifthomes-api/internal/application/onboarding")

var slugRegex = regexp.MustCompile(`^[a-z0-9](-?[a-z0-9])*$`)

// Slugs que no puede tomar una organización.
var reservedSlugs = map[string]bool{
	"www":   true,
	"api":   true,
	"admin": true,
	"app":   true,
	"demo":  true,
}

const (
	minSlugLen = 3
	maxSlugLen = 40
)

// UseCase máquina de estados del onboarding.
type UseCase struct {
	drafts     repository.OnboardingDraftRepository
	orgs       repository.OrganizationRepository
	tx         TxRunner
	metrics    ports.MetricsRecorder
	log        *logger.Logger
	baseDomain string
	now        func() time.Time
}

// NewUseCase construye el caso de uso. orgs se usa para validar slugs fuera de la transacción.
func NewUseCase(drafts repository.OnboardingDraftRepository, orgs repository.OrganizationRepository, tx TxRunner, metrics ports.MetricsRecorder, log *logger.Logger, baseDomain string) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		drafts:     drafts,
		orgs:       orgs,
		tx:         tx,
		metrics:    metrics,
		log:        log,
		baseDomain: baseDomain,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Get devuelve el borrador.
func (uc *UseCase) Get(ctx context.Context, draftID string) (*dto.OnboardingDraftResponse, error) {
	d, err := uc.load(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// SubmitCompanyInfo collecting_company_info → choosing_domain.
func (uc *UseCase) SubmitCompanyInfo(ctx context.Context, draftID string, in dto.CompanyInfoRequest) (*dto.OnboardingDraftResponse, error) {
	d, err := uc.loadAt(ctx, draftID, entity.OnboardingCompanyInfo)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrMissingRequiredField
	}
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if cur == "" {
		cur = "USD"
	}
	if _, err := currency.ParseISO(cur); err != nil {
		return nil, fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, cur)
	}
	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("%w: zona horaria %q", domain.ErrInvalidInput, tz)
	}
	d.CompanyName = name
	d.Address = strings.TrimSpace(in.Address)
	d.Currency = cur
	d.Timezone = tz
	return uc.advance(ctx, d)
}

// ChooseDomain choosing_domain → choosing_plan.
func (uc *UseCase) ChooseDomain(ctx context.Context, draftID string, in dto.ChooseDomainRequest) (*dto.OnboardingDraftResponse, error) {
	d, err := uc.loadAt(ctx, draftID, entity.OnboardingDomain)
	if err != nil {
		return nil, err
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	existing, err := uc.orgs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	d.Slug = slug
	return uc.advance(ctx, d)
}

// ValidateSlug aplica formato, largo y la lista de reservados.
func ValidateSlug(slug string) error {
	if slug == "" {
		return domain.ErrMissingRequiredField
	}
	if len(slug) < minSlugLen || len(slug) > maxSlugLen || !slugRegex.MatchString(slug) {
		return fmt.Errorf("%w: slug %q", domain.ErrInvalidInput, slug)
	}
	if reservedSlugs[slug] {
		return fmt.Errorf("%w: slug reservado %q", domain.ErrDuplicate, slug)
	}
	return nil
}

// ChoosePlan choosing_plan → creating_admin_account.
func (uc *UseCase) ChoosePlan(ctx context.Context, draftID string, in dto.ChoosePlanRequest) (*dto.OnboardingDraftResponse, error) {
	d, err := uc.loadAt(ctx, draftID, entity.OnboardingPlan)
	if err != nil {
		return nil, err
	}
	plan, ok := entity.FindPlan(strings.ToLower(strings.TrimSpace(in.Plan)))
	if !ok {
		return nil, fmt.Errorf("%w: plan %q", domain.ErrInvalidInput, in.Plan)
	}
	d.Plan = plan.Code
	return uc.advance(ctx, d)
}

// Back retrocede una etapa; los datos ya capturados se conservan.
func (uc *UseCase) Back(ctx context.Context, draftID string) (*dto.OnboardingDraftResponse, error) {
	d, err := uc.load(ctx, draftID)
	if err != nil {
		return nil, err
	}
	prev, ok := entity.PrevOnboardingState(d.State)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	d.State = prev
	d.UpdatedAt = uc.now()
	if err := uc.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// Complete crea la organización y su administrador en una sola transacción y elimina el borrador.
func (uc *UseCase) Complete(ctx context.Context, draftID string) (*dto.OnboardingCompleteResponse, error) {
	ctx, span := tracer.Start(ctx, "onboarding.Complete")
	defer span.End()

	d, err := uc.loadAt(ctx, draftID, entity.OnboardingAdminAccount)
	if err != nil {
		return nil, err
	}
	plan, ok := entity.FindPlan(d.Plan)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	now := uc.now()
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      d.CompanyName,
		Slug:      d.Slug,
		Plan:      plan.Code,
		PlanPrice: plan.MonthlyPrice,
		Status:    entity.OrganizationStatusActive,
		Currency:  d.Currency,
		Timezone:  d.Timezone,
		Address:   d.Address,
		Branding:  entity.Branding{PrimaryColor: "#2563eb"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if uc.baseDomain != "" {
		org.Domain = d.Slug + "." + uc.baseDomain
	}
	user := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Email:          d.AdminEmail,
		PasswordHash:   d.AdminPasswordHash,
		Name:           d.AdminName,
		Phone:          d.AdminPhone,
		Role:           entity.RolePropertyAdmin,
		Status:         entity.UserStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.tx.RunOnboarding(ctx, func(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) error {
		if err := orgRepo.Create(ctx, org); err != nil {
			return err
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit onboarding")
		uc.log.Warn().Err(err).Str("draft_id", d.ID).Msg("onboarding revertido")
		return nil, err
	}

	if err := uc.drafts.Delete(ctx, d.ID); err != nil {
		// La organización ya existe; el borrador vence solo.
		uc.log.Error().Err(err).Str("draft_id", d.ID).Msg("no se pudo eliminar el borrador")
	}
	uc.metrics.OnboardingCompleted(plan.Code)
	span.SetAttributes(attribute.String("organization.slug", org.Slug), attribute.String("organization.plan", plan.Code))
	uc.log.Info().Str("organization_id", org.ID).Str("user_id", user.ID).Str("plan", plan.Code).Msg("onboarding completado")

	return &dto.OnboardingCompleteResponse{
		Organization: organization.ToOrganizationResponse(org),
		User:         *auth.ToUserResponse(user),
		RedirectTo:   access.LandingRouteFor(entity.RolePropertyAdmin),
	}, nil
}

func (uc *UseCase) load(ctx context.Context, draftID string) (*entity.OnboardingDraft, error) {
	d, err := uc.drafts.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.Expired(uc.now()) {
		_ = uc.drafts.Delete(ctx, d.ID)
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (uc *UseCase) loadAt(ctx context.Context, draftID string, want entity.OnboardingState) (*entity.OnboardingDraft, error) {
	d, err := uc.load(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.State != want {
		return nil, domain.ErrInvalidTransition
	}
	return d, nil
}

func (uc *UseCase) advance(ctx context.Context, d *entity.OnboardingDraft) (*dto.OnboardingDraftResponse, error) {
	next, ok := entity.NextOnboardingState(d.State)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	d.State = next
	d.UpdatedAt = uc.now()
	if err := uc.drafts.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("guardar borrador: %w", err)
	}
	return toDraftResponse(d), nil
}

func toDraftResponse(d *entity.OnboardingDraft) *dto.OnboardingDraftResponse {
	return &dto.OnboardingDraftResponse{
		ID:          d.ID,
		State:       string(d.State),
		AdminEmail:  d.AdminEmail,
		AdminName:   d.AdminName,
		CompanyName: d.CompanyName,
		Address:     d.Address,
		Currency:    d.Currency,
		Timezone:    d.Timezone,
		Slug:        d.Slug,
		Plan:        d.Plan,
		ExpiresAt:   d.ExpiresAt,
	}
}
