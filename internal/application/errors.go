package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
)

// Error kinds returned by the services. Callers match them with errors.Is;
// the HTTP layer decides how much of each one is shown to clients.
var (
	ErrNoSuchAccount              = errors.New("no account with this email")
	ErrBadCredentials             = errors.New("password does not match")
	ErrEmailNotConfirmed          = errors.New("email not confirmed")
	ErrConflict                   = errors.New("already exists")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrNotFound                   = errors.New("not found")
	ErrUnauthenticated            = errors.New("unauthenticated")
	ErrActorNotFound              = errors.New("acting account no longer exists")
	ErrForbidden                  = errors.New("forbidden")
	ErrTargetNotFound             = errors.New("target account not found")
	ErrSelfDeletionForbidden      = errors.New("admins cannot delete themselves")
	ErrPeerAdminDeletionForbidden = errors.New("admins cannot delete other admins")
	ErrUnavailable                = errors.New("upstream unavailable")

	errImagesDisabled = errors.New("image host not configured")
	errMailDisabled   = errors.New("mail sender not configured")
)

// ValidationError carries field level details for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func invalid(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// unavailable tags a collaborator failure so it surfaces as a 5xx.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// storeErr translates repository errors. notFound is the kind reported for
// repository.ErrNotFound; it differs per call site (actor, target, plain).
func storeErr(op string, err error, notFound error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	default:
		return unavailable(op, err)
	}
}
