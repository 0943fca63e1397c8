package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
)

// AccountRepository keeps accounts in process memory. The email index is
// checked under the same lock as the insert, so concurrent creates with one
// email leave exactly one account.
type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.Account
	byEmail map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    map[string]*entity.Account{},
		byEmail: map[string]string{},
	}
}

var _ repo.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[a.Email]; taken {
		return repo.ErrConflict
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, taken := r.byID[a.ID]; taken {
		return repo.ErrConflict
	}
	cp := *a
	r.byID[a.ID] = &cp
	r.byEmail[a.Email] = a.ID
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *AccountRepository) Update(ctx context.Context, id string, patch repo.AccountPatch) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if patch.Email != nil && *patch.Email != a.Email {
		if _, taken := r.byEmail[*patch.Email]; taken {
			return nil, repo.ErrConflict
		}
		delete(r.byEmail, a.Email)
		r.byEmail[*patch.Email] = id
	}
	patch.Apply(a)
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

func (r *AccountRepository) MarkEmailConfirmed(ctx context.Context, id string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || a.EmailConfirmed {
		return nil, repo.ErrNotFound
	}
	a.EmailConfirmed = true
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	delete(r.byEmail, a.Email)
	delete(r.byID, id)
	return nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Account, 0, len(r.byID))
	for _, a := range r.byID {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}
