package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/swifthomes-api/internal/application/onboarding"
	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
	"github.com/jhoicas/swifthomes-api/internal/domain/repository"
)

var _ onboarding.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con repositorios que acumulan las altas y las aplican todas
// juntas al final. Si fn falla, o alguna alta choca al aplicar, no se escribe nada.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunOnboarding ejecuta fn con repos de organizaciones y usuarios atados a la transacción.
func (r *TxRunner) RunOnboarding(ctx context.Context, fn func(
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
) error) error {
	tx := &memTx{s: r.s}
	if err := fn(&txOrgRepo{tx: tx, base: NewOrganizationRepository(r.s)}, &txUserRepo{tx: tx, base: NewUserRepository(r.s)}); err != nil {
		return err
	}
	return tx.commit()
}

type memTx struct {
	s     *Store
	mu    sync.Mutex
	orgs  []*entity.Organization
	users []*entity.User
}

// commit aplica las altas pendientes bajo el lock del store; todo o nada.
func (t *memTx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for _, o := range t.orgs {
		if _, ok := t.s.orgBySlug[o.Slug]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := t.s.orgs[o.ID]; ok {
			return domain.ErrDuplicate
		}
	}
	for _, u := range t.users {
		if _, ok := t.s.userByEmail[u.Email]; ok {
			return domain.ErrEmailAlreadyExists
		}
		if _, ok := t.s.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
	}
	for _, o := range t.orgs {
		if err := t.s.insertOrg(o); err != nil {
			return err
		}
	}
	for _, u := range t.users {
		if err := t.s.insertUser(u); err != nil {
			return err
		}
	}
	return nil
}

type txOrgRepo struct {
	tx   *memTx
	base *OrganizationRepo
}

func (r *txOrgRepo) Create(ctx context.Context, org *entity.Organization) error {
	if existing, _ := r.GetBySlug(ctx, org.Slug); existing != nil {
		return domain.ErrDuplicate
	}
	r.tx.mu.Lock()
	defer r.tx.mu.Unlock()
	r.tx.orgs = append(r.tx.orgs, copyOrg(org))
	return nil
}

func (r *txOrgRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	r.tx.mu.Lock()
	for _, o := range r.tx.orgs {
		if o.ID == id {
			r.tx.mu.Unlock()
			return copyOrg(o), nil
		}
	}
	r.tx.mu.Unlock()
	return r.base.GetByID(ctx, id)
}

func (r *txOrgRepo) GetBySlug(ctx context.Context, slug string) (*entity.Organization, error) {
	r.tx.mu.Lock()
	for _, o := range r.tx.orgs {
		if o.Slug == slug {
			r.tx.mu.Unlock()
			return copyOrg(o), nil
		}
	}
	r.tx.mu.Unlock()
	return r.base.GetBySlug(ctx, slug)
}

func (r *txOrgRepo) Update(ctx context.Context, org *entity.Organization) error {
	return r.base.Update(ctx, org)
}

func (r *txOrgRepo) List(ctx context.Context, limit, offset int) ([]*entity.Organization, error) {
	return r.base.List(ctx, limit, offset)
}

type txUserRepo struct {
	tx   *memTx
	base *UserRepo
}

func (r *txUserRepo) Create(ctx context.Context, user *entity.User) error {
	if existing, _ := r.GetByEmail(ctx, user.Email); existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	r.tx.mu.Lock()
	defer r.tx.mu.Unlock()
	r.tx.users = append(r.tx.users, copyUser(user))
	return nil
}

func (r *txUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.tx.mu.Lock()
	for _, u := range r.tx.users {
		if u.ID == id {
			r.tx.mu.Unlock()
			return copyUser(u), nil
		}
	}
	r.tx.mu.Unlock()
	return r.base.GetByID(ctx, id)
}

func (r *txUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.tx.mu.Lock()
	for _, u := range r.tx.users {
		if u.Email == email {
			r.tx.mu.Unlock()
			return copyUser(u), nil
		}
	}
	r.tx.mu.Unlock()
	return r.base.GetByEmail(ctx, email)
}

func (r *txUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.base.Update(ctx, user)
}

func (r *txUserRepo) ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]*entity.User, error) {
	return r.base.ListByOrganization(ctx, organizationID, limit, offset)
}
