package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
	"github.com/oksasatya/shop-admin-dashboard/internal/infrastructure/memory"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

type sentMail struct {
	To      []string
	Subject string
	HTML    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to []string, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

var confirmLink = regexp.MustCompile(`confirm-email/([A-Za-z0-9_\-\.]+)`)

// lastToken extracts the confirmation token from the last sent mail.
func (m *fakeMailer) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	match := confirmLink.FindStringSubmatch(m.sent[len(m.sent)-1].HTML)
	require.Len(t, match, 2)
	return match[1]
}

type fakeImages struct {
	mu        sync.Mutex
	n         int
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeImages) Upload(_ context.Context, _ []byte, _ string, category string) (entity.ImageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return entity.ImageRef{}, f.uploadErr
	}
	f.n++
	id := fmt.Sprintf("%s-images/%d.png", category, f.n)
	f.uploaded = append(f.uploaded, id)
	return entity.ImageRef{URL: "https://img.test/" + id, PublicID: id}, nil
}

func (f *fakeImages) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return f.deleteErr
}

// brokenAccounts fails every call with a store outage.
type brokenAccounts struct {
	repo.AccountRepository
	err error
}

func (b brokenAccounts) FindByEmail(context.Context, string) (*entity.Account, error) {
	return nil, b.err
}

func (b brokenAccounts) FindByID(context.Context, string) (*entity.Account, error) {
	return nil, b.err
}

func (b brokenAccounts) Create(context.Context, *entity.Account) error { return b.err }

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type env struct {
	svc      *Service
	products *ProductService
	accounts *memory.AccountRepository
	mailer   *fakeMailer
	images   *fakeImages
	clock    *clock
}

func newEnv(t *testing.T) *env {
	t.Helper()
	clk := &clock{now: time.Now()}
	jwt := helpers.NewJWTManager("session-secret", "confirm-secret", 24*time.Hour, time.Hour, "test").WithClock(clk.Now)
	e := &env{
		accounts: memory.NewAccountRepository(),
		mailer:   &fakeMailer{},
		images:   &fakeImages{},
		clock:    clk,
	}
	e.svc = NewService(e.accounts, jwt, helpers.NewBcryptHasher(helpers.MinBcryptCost), e.mailer, e.images, nil, nil, Options{
		ConfirmURL:  "http://localhost:8080/api/confirm-email",
		AppName:     "Shop",
		CallTimeout: time.Second,
	})
	e.products = NewProductService(memory.NewProductRepository(), e.svc, e.images, nil, time.Second)
	return e
}

// seed stores an account directly, bypassing registration.
func (e *env) seed(t *testing.T, name, email string, admin, confirmed bool) *entity.Account {
	t.Helper()
	hash, err := e.svc.Hasher.Hash("secret1")
	require.NoError(t, err)
	a := &entity.Account{Name: name, Email: email, PasswordHash: hash, IsAdmin: admin, EmailConfirmed: confirmed, CreatedAt: time.Now()}
	require.NoError(t, e.accounts.Create(context.Background(), a))
	return a
}

func (e *env) token(t *testing.T, a *entity.Account) string {
	t.Helper()
	tok, _, err := e.svc.issueSession(a)
	require.NoError(t, err)
	return tok
}

func (e *env) exists(id string) bool {
	_, err := e.accounts.FindByID(context.Background(), id)
	return !errors.Is(err, repo.ErrNotFound)
}
