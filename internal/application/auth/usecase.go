package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/ports"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
	"github.com/jhoicas/swifthomes-api/pkg/jwt"
	"github.com/jhoicas/swifthomes-api/pkg/logger"
)

// MinPasswordLength largo mínimo de password en el registro.
const MinPasswordLength = 6

// OnboardingRoute siguiente pantalla cuando el registro abre un onboarding.
const OnboardingRoute = "/onboarding"

var tracer = otel.Tracer("github.com/jhoicas/swifthomes-api/internal/application/auth")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Options parámetros de comportamiento del caso de uso.
type Options struct {
	JWT                     JWTConfig
	DefaultOrganizationSlug string
	DraftTTL                time.Duration
}

// Deps puertos que necesita AuthUseCase.
type Deps struct {
	Users         repository.UserRepository
	Organizations repository.OrganizationRepository
	Sessions      repository.SessionRepository
	Drafts        repository.OnboardingDraftRepository
	Hasher        ports.PasswordHasher
	Metrics       ports.MetricsRecorder
	Log           *logger.Logger
}

// AuthUseCase casos de uso de autenticación: credenciales, sesión y registro.
type AuthUseCase struct {
	users    repository.UserRepository
	orgs     repository.OrganizationRepository
	sessions repository.SessionRepository
	drafts   repository.OnboardingDraftRepository
	hasher   ports.PasswordHasher
	metrics  ports.MetricsRecorder
	log      *logger.Logger
	opts     Options
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(deps Deps, opts Options) *AuthUseCase {
	if deps.Metrics == nil {
		deps.Metrics = ports.NopMetrics{}
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if opts.DraftTTL <= 0 {
		opts.DraftTTL = 2 * time.Hour
	}
	return &AuthUseCase{
		users:    deps.Users,
		orgs:     deps.Organizations,
		sessions: deps.Sessions,
		drafts:   deps.Drafts,
		hasher:   deps.Hasher,
		metrics:  deps.Metrics,
		log:      deps.Log,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate resuelve credenciales contra la tabla de usuarios. No escribe nada.
// Email inexistente y password incorrecto devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Igualar el costo de una verificación real.
		_, _ = uc.hasher.Verify(password, uc.dummy())
		return nil, domain.ErrInvalidCredentials
	}
	ok, err := uc.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("hash de password ilegible")
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (uc *AuthUseCase) dummy() string {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = uc.hasher.Hash(uuid.NewString())
	})
	return uc.dummyHash
}

// Login verifica credenciales, reemplaza la sesión del usuario y emite el token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.ErrMissingRequiredField
	}
	user, err := uc.Authenticate(ctx, strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		uc.recordLoginFailure(err)
		span.SetStatus(codes.Error, "authenticate")
		return nil, err
	}
	if user.OrganizationID != "" {
		org, err := uc.orgs.GetByID(ctx, user.OrganizationID)
		if err != nil {
			return nil, err
		}
		if org != nil && !org.IsActive() {
			uc.recordLoginFailure(domain.ErrForbidden)
			return nil, domain.ErrForbidden
		}
	}

	now := uc.now()
	session := &entity.Session{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
		Name:           user.Name,
		OrganizationID: user.OrganizationID,
		Authenticated:  true,
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Duration(uc.opts.JWT.ExpMinutes) * time.Minute),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	token, err := jwt.Generate(uc.opts.JWT.Secret, uc.opts.JWT.Issuer, uc.opts.JWT.ExpMinutes, jwt.Subject{
		SessionID:      session.ID,
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Role:           string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.LoginAttempt(ports.LoginSucceeded)
	span.SetAttributes(attribute.String("user.role", string(user.Role)))
	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login exitoso")

	return &dto.LoginResponse{
		Token:      token,
		Session:    ToSessionResponse(session),
		RedirectTo: access.LandingRouteFor(user.Role),
	}, nil
}

func (uc *AuthUseCase) recordLoginFailure(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		uc.metrics.LoginAttempt(ports.LoginInvalidCredentials)
		uc.log.Warn().Msg("login rechazado: credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		uc.metrics.LoginAttempt(ports.LoginForbidden)
		uc.log.Warn().Msg("login rechazado: cuenta u organización inactiva")
	}
}

// CurrentSession valida el token y carga la sesión del servidor.
// Cualquier falla (firma, expiración, sesión cerrada o reemplazada) es ErrUnauthenticated.
func (uc *AuthUseCase) CurrentSession(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := jwt.Parse(uc.opts.JWT.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	session, err := uc.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Authenticated || session.UserID != claims.UserID {
		return nil, domain.ErrUnauthenticated
	}
	if session.Expired(uc.now()) {
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}

// Logout destruye la sesión. Cerrar una sesión inexistente no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	uc.log.Info().Str("session_id", sessionID).Msg("logout")
	return nil
}

// Register valida la solicitud antes de escribir nada. Un property_admin abre un borrador de
// onboarding (no puede unirse a una organización existente); cualquier otro rol queda creado
// en su organización.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.OrganizationID = strings.TrimSpace(in.OrganizationID)

	role, err := validateRegistration(in)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.role", string(role)))

	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	if role == entity.RolePropertyAdmin {
		return uc.startOnboarding(ctx, in)
	}

	org, err := uc.targetOrganization(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Email:          in.Email,
		PasswordHash:   hash,
		Name:           in.Name,
		Phone:          in.Phone,
		Role:           role,
		Status:         entity.UserStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.metrics.Registration(string(role))
	uc.log.Info().Str("user_id", user.ID).Str("role", string(role)).Str("organization_id", org.ID).Msg("usuario registrado")

	return &dto.RegisterResponse{User: ToUserResponse(user), Next: access.LoginRoute}, nil
}

// validateRegistration aplica las reglas del formulario de registro, en orden.
func validateRegistration(in dto.RegisterRequest) (entity.Role, error) {
	if in.Email == "" || in.Name == "" || in.Role == "" || in.Password == "" || in.ConfirmPassword == "" {
		return "", domain.ErrMissingRequiredField
	}
	if len(in.Password) < MinPasswordLength {
		return "", domain.ErrPasswordTooShort
	}
	if in.Password != in.ConfirmPassword {
		return "", domain.ErrPasswordMismatch
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok || role == entity.RoleSuperAdmin {
		return "", domain.ErrInvalidRole
	}
	// Un property_admin solo nace del onboarding de su propia organización.
	if role == entity.RolePropertyAdmin && in.OrganizationID != "" {
		return "", domain.ErrInvalidRole
	}
	if !emailRegex.MatchString(in.Email) {
		return "", domain.ErrInvalidInput
	}
	return role, nil
}

func (uc *AuthUseCase) targetOrganization(ctx context.Context, id string) (*entity.Organization, error) {
	var (
		org *entity.Organization
		err error
	)
	if id != "" {
		org, err = uc.orgs.GetByID(ctx, id)
	} else {
		org, err = uc.orgs.GetBySlug(ctx, uc.opts.DefaultOrganizationSlug)
	}
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if !org.IsActive() {
		return nil, domain.ErrForbidden
	}
	return org, nil
}

func (uc *AuthUseCase) startOnboarding(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	draft := &entity.OnboardingDraft{
		ID:                uuid.New().String(),
		State:             entity.OnboardingCompanyInfo,
		AdminEmail:        in.Email,
		AdminName:         in.Name,
		AdminPhone:        in.Phone,
		AdminPasswordHash: hash,
		CreatedAt:         now,
		UpdatedAt:         now,
		ExpiresAt:         now.Add(uc.opts.DraftTTL),
	}
	if err := uc.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("guardar borrador de onboarding: %w", err)
	}
	uc.log.Info().Str("draft_id", draft.ID).Msg("onboarding iniciado")
	return &dto.RegisterResponse{OnboardingDraftID: draft.ID, Next: OnboardingRoute}, nil
}

// ToUserResponse convierte la entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		Name:           u.Name,
		Phone:          u.Phone,
		Role:           string(u.Role),
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// ToSessionResponse convierte la sesión a DTO.
func ToSessionResponse(s *entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:             s.ID,
		Email:          s.Email,
		Role:           string(s.Role),
		Name:           s.Name,
		OrganizationID: s.OrganizationID,
		Authenticated:  s.Authenticated,
		OAuthProvider:  s.OAuthProvider,
		ExpiresAt:      s.ExpiresAt,
	}
}
