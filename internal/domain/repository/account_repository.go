package repository

import (
	"context"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
)

// AccountRepository defines the persistence contract for accounts.
// Email uniqueness is enforced by the store itself: Create and Update return
// ErrConflict instead of relying on a check-then-insert in callers.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, id string, patch AccountPatch) (*entity.Account, error)
	// MarkEmailConfirmed flips emailConfirmed only when it is currently false.
	// ErrNotFound covers both a missing account and one already confirmed.
	MarkEmailConfirmed(ctx context.Context, id string) (*entity.Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Account, error)
}

// AccountPatch lists the fields to change; nil means untouched.
// PasswordHash must already be hashed by the caller.
type AccountPatch struct {
	Name           *string
	Email          *string
	PasswordHash   *string
	IsAdmin        *bool
	EmailConfirmed *bool
	Image          *entity.ImageRef
}

func (p AccountPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil &&
		p.IsAdmin == nil && p.EmailConfirmed == nil && p.Image == nil
}

// Apply copies the patch onto a, used by stores that update in memory.
func (p AccountPatch) Apply(a *entity.Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.PasswordHash != nil {
		a.PasswordHash = *p.PasswordHash
	}
	if p.IsAdmin != nil {
		a.IsAdmin = *p.IsAdmin
	}
	if p.EmailConfirmed != nil {
		a.EmailConfirmed = *p.EmailConfirmed
	}
	if p.Image != nil {
		a.Image = *p.Image
	}
}
