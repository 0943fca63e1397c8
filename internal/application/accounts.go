package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
)

type CreateAccountInput struct {
	Name           string `json:"name" form:"name" validate:"required,max=100"`
	Email          string `json:"email" form:"email" validate:"required,email"`
	Password       string `json:"password" form:"password" validate:"required,pwd"`
	IsAdmin        bool   `json:"isAdmin" form:"isAdmin"`
	EmailConfirmed bool   `json:"emailConfirmed" form:"emailConfirmed"`
}

// UpdateAccountInput holds the fields to change; nil leaves a field as is.
type UpdateAccountInput struct {
	Name           *string `json:"name" form:"name" validate:"omitnil,min=1,max=100"`
	Email          *string `json:"email" form:"email" validate:"omitnil,email"`
	Password       *string `json:"password" form:"password" validate:"omitnil,pwd"`
	IsAdmin        *bool   `json:"isAdmin" form:"isAdmin"`
	EmailConfirmed *bool   `json:"emailConfirmed" form:"emailConfirmed"`
}

type AccountResult struct {
	Account  entity.AccountView
	Warnings []string
}

// CreateAccount is the admin-only creation path. Unlike Register it may set
// isAdmin and pre-confirm the email.
func (s *Service) CreateAccount(ctx context.Context, token string, in CreateAccountInput, img *ImageUpload) (*AccountResult, error) {
	actor, err := s.RequireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}
	in.Email = NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validate(in); err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	a := &entity.Account{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hash,
		IsAdmin:        in.IsAdmin,
		EmailConfirmed: in.EmailConfirmed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if img != nil {
		if a.Image, err = s.uploadImage(ctx, img, CategoryUser); err != nil {
			return nil, err
		}
	}

	cctx, cancel := s.call(ctx)
	err = s.Accounts.Create(cctx, a)
	cancel()
	if err != nil {
		s.deleteImage(ctx, a.Image.PublicID, logrus.Fields{"user_id": actor.ID})
		return nil, storeErr("create account", err, ErrNotFound)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": actor.ID, "target_id": a.ID}).Info("account created")

	res := &AccountResult{Account: a.View()}
	if !a.EmailConfirmed {
		if w := s.sendConfirmation(ctx, a); w != "" {
			res.Warnings = append(res.Warnings, w)
		}
	}
	s.index(ctx, a)
	return res, nil
}

// UpdateAccount serves both self-service and admin edits. Only admins may
// edit other accounts or touch the role and confirmation flags.
func (s *Service) UpdateAccount(ctx context.Context, token, targetID string, in UpdateAccountInput, img *ImageUpload) (*AccountResult, error) {
	actor, err := s.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && (actor.ID != targetID || in.IsAdmin != nil || in.EmailConfirmed != nil) {
		return nil, ErrForbidden
	}
	if in.Email != nil {
		e := NormalizeEmail(*in.Email)
		in.Email = &e
	}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		in.Name = &n
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	current, err := s.findAccount(ctx, targetID, ErrNotFound)
	if err != nil {
		return nil, err
	}

	patch := repo.AccountPatch{
		Name:           in.Name,
		Email:          in.Email,
		IsAdmin:        in.IsAdmin,
		EmailConfirmed: in.EmailConfirmed,
	}
	if in.Password != nil {
		hash, err := s.Hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}
	if img != nil {
		ref, err := s.uploadImage(ctx, img, CategoryUser)
		if err != nil {
			return nil, err
		}
		patch.Image = &ref
	}
	if patch.IsEmpty() {
		return &AccountResult{Account: current.View()}, nil
	}

	fields := logrus.Fields{"user_id": actor.ID, "target_id": targetID}
	cctx, cancel := s.call(ctx)
	updated, err := s.Accounts.Update(cctx, targetID, patch)
	cancel()
	if err != nil {
		if patch.Image != nil {
			s.deleteImage(ctx, patch.Image.PublicID, fields)
		}
		return nil, storeErr("update account", err, ErrNotFound)
	}
	if patch.Image != nil && current.Image.PublicID != "" && current.Image.PublicID != patch.Image.PublicID {
		s.deleteImage(ctx, current.Image.PublicID, fields)
	}
	s.index(ctx, updated)
	s.Logger.WithFields(fields).Info("account updated")
	return &AccountResult{Account: updated.View()}, nil
}

// ListAccounts returns every account, newest first.
func (s *Service) ListAccounts(ctx context.Context, token string) ([]entity.AccountView, error) {
	if _, err := s.Authorize(ctx, token); err != nil {
		return nil, err
	}
	cctx, cancel := s.call(ctx)
	defer cancel()
	accounts, err := s.Accounts.List(cctx)
	if err != nil {
		return nil, unavailable("list accounts", err)
	}
	sort.SliceStable(accounts, func(i, j int) bool { return accounts[i].CreatedAt.After(accounts[j].CreatedAt) })
	out := make([]entity.AccountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.View())
	}
	return out, nil
}

func (s *Service) GetAccount(ctx context.Context, token, id string) (*entity.AccountView, error) {
	if _, err := s.Authorize(ctx, token); err != nil {
		return nil, err
	}
	a, err := s.findAccount(ctx, id, ErrNotFound)
	if err != nil {
		return nil, err
	}
	v := a.View()
	return &v, nil
}

// SearchAccounts queries the search index on email and name. Without an
// index it falls back to a substring match over the store.
func (s *Service) SearchAccounts(ctx context.Context, token, q string, size int) ([]entity.AccountView, error) {
	if _, err := s.RequireAdmin(ctx, token); err != nil {
		return nil, err
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalid(map[string]string{"q": "is required"})
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	if s.Index != nil {
		cctx, cancel := s.call(ctx)
		defer cancel()
		hits, err := s.Index.Search(cctx, q, size)
		if err != nil {
			return nil, unavailable("search accounts", err)
		}
		return hits, nil
	}

	cctx, cancel := s.call(ctx)
	defer cancel()
	accounts, err := s.Accounts.List(cctx)
	if err != nil {
		return nil, unavailable("list accounts", err)
	}
	needle := strings.ToLower(q)
	out := make([]entity.AccountView, 0, size)
	for _, a := range accounts {
		if strings.Contains(a.Email, needle) || strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a.View())
			if len(out) == size {
				break
			}
		}
	}
	return out, nil
}
