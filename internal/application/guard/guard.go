// Package guard decide si una sesión puede ver una ruta protegida.
package guard

import (
	"context"
	"errors"

	"github.com/jhoicas/swifthomes-api/internal/application/dto"
	"github.com/jhoicas/swifthomes-api/internal/application/ports"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/access"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/pkg/logger"
)

// Motivos de AccessCheckResponse.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonForbidden       = "forbidden"
	ReasonUnknownRoute    = "unknown_route"
)

// SessionSource carga la sesión vigente a partir del token (lo implementa auth.AuthUseCase).
type SessionSource interface {
	CurrentSession(ctx context.Context, token string) (*entity.Session, error)
}

// Guard aplica el control de acceso por rol.
type Guard struct {
	sessions SessionSource
	metrics  ports.MetricsRecorder
	log      *logger.Logger
}

// NewGuard construye el guard.
func NewGuard(sessions SessionSource, metrics ports.MetricsRecorder, log *logger.Logger) *Guard {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{sessions: sessions, metrics: metrics, log: log}
}

// RequireRole devuelve la sesión si el token es válido y su rol está en allowed.
// Sin roles, basta con estar autenticado. Sin sesión: ErrUnauthenticated; rol fuera de la lista: ErrForbidden.
func (g *Guard) RequireRole(ctx context.Context, token string, allowed ...entity.Role) (*entity.Session, error) {
	session, err := g.sessions.CurrentSession(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			g.metrics.GuardDecision(ports.GuardUnauthenticated)
		}
		return nil, err
	}
	if err := g.Authorize(session, allowed...); err != nil {
		return nil, err
	}
	return session, nil
}

// Authorize aplica la regla de rol sobre una sesión ya cargada y registra la decisión.
func (g *Guard) Authorize(session *entity.Session, allowed ...entity.Role) error {
	if session == nil || !session.Authenticated {
		g.metrics.GuardDecision(ports.GuardUnauthenticated)
		return domain.ErrUnauthenticated
	}
	if len(allowed) > 0 && !hasRole(session.Role, allowed) {
		g.metrics.GuardDecision(ports.GuardForbidden)
		g.log.Warn().
			Str("user_id", session.UserID).
			Str("role", string(session.Role)).
			Msg("acceso denegado por rol")
		return domain.ErrForbidden
	}
	g.metrics.GuardDecision(ports.GuardAllowed)
	return nil
}

// CheckPath evalúa si el portador del token puede visitar path según la tabla de rutas.
func (g *Guard) CheckPath(ctx context.Context, token, path string) (dto.AccessCheckResponse, error) {
	out := dto.AccessCheckResponse{Path: path}
	roles := access.AllowedRolesFor(path)
	if len(roles) == 0 {
		out.Reason = ReasonUnknownRoute
		out.Redirect = access.FallbackRoute
		return out, nil
	}
	_, err := g.RequireRole(ctx, token, roles...)
	switch {
	case err == nil:
		out.Allowed = true
	case errors.Is(err, domain.ErrUnauthenticated):
		out.Reason = ReasonUnauthenticated
		out.Redirect = access.LoginRoute
	case errors.Is(err, domain.ErrForbidden):
		out.Reason = ReasonForbidden
		out.Redirect = access.LoginRoute
	default:
		return out, err
	}
	return out, nil
}

func hasRole(role entity.Role, allowed []entity.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
