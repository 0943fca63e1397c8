package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
	tpl "github.com/oksasatya/shop-admin-dashboard/pkg/mailer/templates"
)

// WarnConfirmationMail is returned in AuthResult.Warnings when the account
// was stored but the confirmation mail could not be handed off.
const WarnConfirmationMail = "confirmation email could not be sent; the account stays unconfirmed"

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RegisterInput struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,pwd"`
}

// AuthResult is returned by Login and Register. Token is empty when no
// session was issued.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   entity.AccountView
	Warnings  []string
}

type ConfirmResult struct {
	Account entity.AccountView
}

// Login checks the password before the confirmation flag, then issues a
// one day session token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := validate(in); err != nil {
		return nil, err
	}

	cctx, cancel := s.call(ctx)
	a, err := s.Accounts.FindByEmail(cctx, in.Email)
	cancel()
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.burnCompare(in.Password)
			return nil, ErrNoSuchAccount
		}
		return nil, unavailable("find account", err)
	}
	if !s.Hasher.Compare(a.PasswordHash, in.Password) {
		return nil, ErrBadCredentials
	}
	if !a.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	token, exp, err := s.issueSession(a)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, Account: a.View()}, nil
}

// Register stores a new unconfirmed, non-admin account and mails a
// confirmation link. A duplicate email is rejected by the store itself.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
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
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	cctx, cancel := s.call(ctx)
	err = s.Accounts.Create(cctx, a)
	cancel()
	if err != nil {
		return nil, storeErr("create account", err, ErrNotFound)
	}
	s.Logger.WithField("user_id", a.ID).Info("account registered")

	res := &AuthResult{Account: a.View()}
	if w := s.sendConfirmation(ctx, a); w != "" {
		res.Warnings = append(res.Warnings, w)
	}
	s.index(ctx, a)

	if s.Opts.IssueSessionOnRegister {
		token, exp, err := s.issueSession(a)
		if err != nil {
			return nil, fmt.Errorf("issue session: %w", err)
		}
		res.Token, res.ExpiresAt = token, exp
	}
	return res, nil
}

// ConfirmEmail flips emailConfirmed for the token's subject. A missing
// account and one that is already confirmed both fail with ErrNotFound.
func (s *Service) ConfirmEmail(ctx context.Context, token string) (*ConfirmResult, error) {
	claims, err := s.JWT.Verify(token, helpers.ConfirmationKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	cctx, cancel := s.call(ctx)
	a, err := s.Accounts.MarkEmailConfirmed(cctx, claims.UserID)
	cancel()
	if err != nil {
		return nil, storeErr("confirm email", err, ErrNotFound)
	}
	s.index(ctx, a)
	return &ConfirmResult{Account: a.View()}, nil
}

// sendConfirmation returns a warning instead of an error: the account is
// already stored and stays unconfirmed until a later confirmation.
func (s *Service) sendConfirmation(ctx context.Context, a *entity.Account) string {
	log := s.Logger.WithFields(logrus.Fields{"user_id": a.ID})

	if s.Mailer == nil {
		log.WithError(errMailDisabled).Warn("confirmation mail skipped")
		return WarnConfirmationMail
	}
	token, exp, err := s.JWT.IssueConfirmation(a.ID)
	if err != nil {
		log.WithError(err).Warn("issue confirmation token failed")
		return WarnConfirmationMail
	}
	link := strings.TrimRight(s.Opts.ConfirmURL, "/") + "/" + token
	data := tpl.NewConfirmEmailData(a.Name, a.Email, link,
		tpl.WithCompany(s.Opts.AppName, s.Opts.CompanyName),
		tpl.WithExpiresAt(exp),
	)
	subject, _, html, err := tpl.Render(tpl.ConfirmEmail, data)
	if err != nil {
		log.WithError(err).Warn("render confirmation mail failed")
		return WarnConfirmationMail
	}

	cctx, cancel := s.call(ctx)
	defer cancel()
	if err := s.Mailer.Send(cctx, []string{a.Email}, subject, html); err != nil {
		log.WithError(err).Warn("confirmation mail failed")
		return WarnConfirmationMail
	}
	return ""
}
