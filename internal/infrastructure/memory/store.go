// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa en development (STORAGE_DRIVER=memory) y en los tests; los datos se pierden al reiniciar.
package memory

import (
	"sync"

	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
)

// Store contenedor compartido por los repositorios en memoria. Todas las lecturas y
// escrituras pasan por mu; las entidades se copian al entrar y al salir.
type Store struct {
	mu sync.RWMutex

	users        map[string]*entity.User // por ID
	userByEmail  map[string]string       // email → ID (sensible a mayúsculas)
	orgs         map[string]*entity.Organization
	orgBySlug    map[string]string
	sessions     map[string]*entity.Session
	sessionOfUsr map[string]string // userID → sessionID vigente
	drafts       map[string]*entity.OnboardingDraft
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*entity.User),
		userByEmail:  make(map[string]string),
		orgs:         make(map[string]*entity.Organization),
		orgBySlug:    make(map[string]string),
		sessions:     make(map[string]*entity.Session),
		sessionOfUsr: make(map[string]string),
		drafts:       make(map[string]*entity.OnboardingDraft),
	}
}

// Counts devuelve la cantidad de organizaciones y usuarios (diagnóstico y tests).
func (s *Store) Counts() (organizations, users int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orgs), len(s.users)
}

// PendingCounts devuelve la cantidad de sesiones y borradores de onboarding vivos.
func (s *Store) PendingCounts() (sessions, drafts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), len(s.drafts)
}

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func copyOrg(o *entity.Organization) *entity.Organization {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

func copySession(s *entity.Session) *entity.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func copyDraft(d *entity.OnboardingDraft) *entity.OnboardingDraft {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
