package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
	"github.com/oksasatya/shop-admin-dashboard/pkg/validation"
)

type Options struct {
	ConfirmURL             string
	AppName                string
	CompanyName            string
	CallTimeout            time.Duration
	IssueSessionOnRegister bool
}

// Service implements authentication, the account authorization policy and
// account administration.
type Service struct {
	Accounts repo.AccountRepository
	JWT      *helpers.JWTManager
	Hasher   PasswordHasher
	Mailer   MailSender
	Images   ImageHost
	Index    AccountIndex
	Logger   *logrus.Logger
	Opts     Options

	dummyOnce sync.Once
	dummyHash string
}

func NewService(accounts repo.AccountRepository, jwt *helpers.JWTManager, hasher PasswordHasher, mailer MailSender, images ImageHost, index AccountIndex, logger *logrus.Logger, opts Options) *Service {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	return &Service{
		Accounts: accounts,
		JWT:      jwt,
		Hasher:   hasher,
		Mailer:   mailer,
		Images:   images,
		Index:    index,
		Logger:   logger,
		Opts:     opts,
	}
}

// NormalizeEmail is applied before every validation, store write and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validate(v any) error {
	return invalid(validation.Validate(v))
}

func validationFields(v any) map[string]string {
	return validation.Validate(v)
}

// callCtx bounds a single collaborator call.
func callCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *Service) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return callCtx(ctx, s.Opts.CallTimeout)
}

// burnCompare spends a hash comparison when no account matched, so a
// missing email costs about as much as a wrong password.
func (s *Service) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("dummy-password-for-timing")
	})
	if s.dummyHash != "" {
		_ = s.Hasher.Compare(s.dummyHash, password)
	}
}

func (s *Service) findAccount(ctx context.Context, id string, notFound error) (*entity.Account, error) {
	cctx, cancel := s.call(ctx)
	defer cancel()
	a, err := s.Accounts.FindByID(cctx, id)
	if err != nil {
		return nil, storeErr("find account", err, notFound)
	}
	return a, nil
}

func (s *Service) uploadImage(ctx context.Context, img *ImageUpload, category string) (entity.ImageRef, error) {
	if s.Images == nil {
		return entity.ImageRef{}, unavailable("upload image", errImagesDisabled)
	}
	cctx, cancel := s.call(ctx)
	defer cancel()
	ref, err := s.Images.Upload(cctx, img.Data, img.ContentType, category)
	if err != nil {
		return entity.ImageRef{}, unavailable("upload image", err)
	}
	return ref, nil
}

// deleteImage is best effort: failures are logged, never returned.
func (s *Service) deleteImage(ctx context.Context, publicID string, fields logrus.Fields) {
	if publicID == "" || s.Images == nil {
		return
	}
	cctx, cancel := s.call(ctx)
	defer cancel()
	if err := s.Images.Delete(cctx, publicID); err != nil {
		s.Logger.WithError(err).WithFields(fields).WithField("public_id", publicID).Warn("image delete failed")
	}
}

func (s *Service) index(ctx context.Context, a *entity.Account) {
	if s.Index == nil {
		return
	}
	cctx, cancel := s.call(ctx)
	defer cancel()
	if err := s.Index.Index(cctx, a); err != nil {
		s.Logger.WithError(err).WithField("user_id", a.ID).Warn("account index failed")
	}
}

func (s *Service) unindex(ctx context.Context, id string) {
	if s.Index == nil {
		return
	}
	cctx, cancel := s.call(ctx)
	defer cancel()
	if err := s.Index.Remove(cctx, id); err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("account unindex failed")
	}
}

func (s *Service) issueSession(a *entity.Account) (string, time.Time, error) {
	return s.JWT.IssueSession(helpers.Claims{
		UserID:  a.ID,
		Email:   a.Email,
		IsAdmin: a.IsAdmin,
		Image:   a.Image.URL,
	})
}
