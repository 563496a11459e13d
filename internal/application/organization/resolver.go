// Package organization resuelve la organización activa de una sesión o de un host y
// expone la administración de organizaciones para el super admin.
package organization

import (
	"context"
	"net"
	"strings"

	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

// Resolver determina la organización en contexto.
type Resolver struct {
	orgs        repository.OrganizationRepository
	defaultSlug string
	baseDomain  string
}

// NewResolver construye el resolver. baseDomain es el dominio bajo el que cuelgan los
// subdominios de cada organización (ej: swifthomes.app).
func NewResolver(orgs repository.OrganizationRepository, defaultSlug, baseDomain string) *Resolver {
	return &Resolver{
		orgs:        orgs,
		defaultSlug: defaultSlug,
		baseDomain:  strings.ToLower(strings.TrimPrefix(baseDomain, ".")),
	}
}

// Default devuelve la organización por defecto.
func (r *Resolver) Default(ctx context.Context) (*entity.Organization, error) {
	org, err := r.orgs.GetBySlug(ctx, r.defaultSlug)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return org, nil
}

// Resolve devuelve la organización de la sesión; sin organization_id, la organización por defecto.
// Un organization_id que ya no existe es ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, session *entity.Session) (*entity.Organization, error) {
	if session == nil || session.OrganizationID == "" {
		return r.Default(ctx)
	}
	org, err := r.orgs.GetByID(ctx, session.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return org, nil
}

// ResolveByHost resuelve por subdominio (acme.swifthomes.app → slug "acme").
// Cualquier otro host, o un slug desconocido, cae en la organización por defecto.
func (r *Resolver) ResolveByHost(ctx context.Context, host string) (*entity.Organization, error) {
	if slug := r.SlugFromHost(host); slug != "" {
		org, err := r.orgs.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if org != nil {
			return org, nil
		}
	}
	return r.Default(ctx)
}

// SlugFromHost extrae el subdominio de primer nivel bajo baseDomain; "" si no aplica.
func (r *Resolver) SlugFromHost(host string) string {
	if r.baseDomain == "" {
		return ""
	}
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	suffix := "." + r.baseDomain
	if !strings.HasSuffix(host, suffix) {
		return ""
	}
	slug := strings.TrimSuffix(host, suffix)
	if slug == "" || strings.Contains(slug, ".") {
		return ""
	}
	return slug
}
