package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

// Authorize verifies a session token and returns the acting account as it
// is stored now. The role and email inside the token are never consulted.
func (s *Service) Authorize(ctx context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := s.JWT.Verify(token, helpers.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return s.findAccount(ctx, claims.UserID, ErrActorNotFound)
}

// RequireAdmin is Authorize plus a check of the stored admin flag.
func (s *Service) RequireAdmin(ctx context.Context, token string) (*entity.Account, error) {
	actor, err := s.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return actor, nil
}

// DeleteAccount removes targetID on behalf of the token holder. Only admins
// may delete, never themselves and never another admin. The profile image
// is removed first on a best effort basis.
func (s *Service) DeleteAccount(ctx context.Context, token, targetID string) error {
	actor, err := s.RequireAdmin(ctx, token)
	if err != nil {
		return err
	}
	target, err := s.findAccount(ctx, targetID, ErrTargetNotFound)
	if err != nil {
		return err
	}
	if actor.ID == target.ID {
		return ErrSelfDeletionForbidden
	}
	if target.IsAdmin {
		return ErrPeerAdminDeletionForbidden
	}

	fields := logrus.Fields{"user_id": actor.ID, "target_id": target.ID}
	s.deleteImage(ctx, target.Image.PublicID, fields)

	cctx, cancel := s.call(ctx)
	err = s.Accounts.Delete(cctx, target.ID)
	cancel()
	if err != nil {
		return storeErr("delete account", err, ErrTargetNotFound)
	}
	s.unindex(ctx, target.ID)
	s.Logger.WithFields(fields).Info("account deleted")
	return nil
}
