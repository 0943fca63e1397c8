package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
)

func TestAccountRepository_UniqueEmailUnderConcurrency(t *testing.T) {
	r := NewAccountRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.Create(ctx, &entity.Account{Email: "dup@x.com"})
		}()
	}
	wg.Wait()
	close(errs)

	ok, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repo.ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, conflicts)

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAccountRepository_UpdateMovesEmailIndex(t *testing.T) {
	r := NewAccountRepository()
	ctx := context.Background()
	a := &entity.Account{Email: "a@x.com"}
	b := &entity.Account{Email: "b@x.com"}
	require.NoError(t, r.Create(ctx, a))
	require.NoError(t, r.Create(ctx, b))

	taken := "b@x.com"
	_, err := r.Update(ctx, a.ID, repo.AccountPatch{Email: &taken})
	assert.ErrorIs(t, err, repo.ErrConflict)

	fresh := "c@x.com"
	got, err := r.Update(ctx, a.ID, repo.AccountPatch{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", got.Email)

	_, err = r.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	byEmail, err := r.FindByEmail(ctx, "c@x.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)
}

func TestAccountRepository_MarkEmailConfirmedOnlyOnce(t *testing.T) {
	r := NewAccountRepository()
	ctx := context.Background()
	a := &entity.Account{Email: "a@x.com"}
	require.NoError(t, r.Create(ctx, a))

	got, err := r.MarkEmailConfirmed(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailConfirmed)

	_, err = r.MarkEmailConfirmed(ctx, a.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	_, err = r.MarkEmailConfirmed(ctx, "missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestAccountRepository_ReturnsCopies(t *testing.T) {
	r := NewAccountRepository()
	ctx := context.Background()
	a := &entity.Account{Email: "a@x.com"}
	require.NoError(t, r.Create(ctx, a))

	got, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	got.IsAdmin = true

	again, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, again.IsAdmin)
}

func TestAccountRepository_Delete(t *testing.T) {
	r := NewAccountRepository()
	ctx := context.Background()
	a := &entity.Account{Email: "a@x.com"}
	require.NoError(t, r.Create(ctx, a))

	require.NoError(t, r.Delete(ctx, a.ID))
	assert.ErrorIs(t, r.Delete(ctx, a.ID), repo.ErrNotFound)
	_, err := r.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.NoError(t, r.Create(ctx, &entity.Account{Email: "a@x.com"}))
}

func TestProductRepository_UniqueNameAndSlug(t *testing.T) {
	r := NewProductRepository()
	ctx := context.Background()
	p := &entity.Product{Name: "Phone", Slug: "phone"}
	require.NoError(t, r.Create(ctx, p))

	assert.ErrorIs(t, r.Create(ctx, &entity.Product{Name: "Phone", Slug: "other"}), repo.ErrConflict)
	assert.ErrorIs(t, r.Create(ctx, &entity.Product{Name: "Other", Slug: "phone"}), repo.ErrConflict)

	q := &entity.Product{Name: "Tablet", Slug: "tablet"}
	require.NoError(t, r.Create(ctx, q))
	q.Slug = "phone"
	assert.ErrorIs(t, r.Update(ctx, q), repo.ErrConflict)

	p.Price = 10
	require.NoError(t, r.Update(ctx, p))
	got, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Price)
}

func TestRepositories_HonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAccountRepository().FindByID(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewProductRepository().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
