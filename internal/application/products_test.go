package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct(name, slug string) ProductInput {
	return ProductInput{
		Name:         name,
		Slug:         slug,
		Brand:        "Acme",
		Category:     "Tools",
		Description:  "A very useful thing",
		Price:        19.5,
		CountInStock: 3,
		Rating:       4.5,
		NumReviews:   2,
	}
}

func TestCreateProduct(t *testing.T) {
	e := newEnv(t)
	admin := e.seed(t, "Admin", "admin@x.com", true, true)

	p, err := e.products.CreateProduct(ctx, e.token(t, admin), sampleProduct(" Hammer ", "Hammer"), png)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Hammer", p.Name)
	assert.Equal(t, "hammer", p.Slug)
	assert.Equal(t, "product-images/1.png", p.ImagePublicID)

	got, err := e.products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Image, got.Image)

	all, err := e.products.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateProduct_Validation(t *testing.T) {
	e := newEnv(t)
	admin := e.seed(t, "Admin", "admin@x.com", true, true)
	in := sampleProduct("Hammer", "not a slug")
	in.Rating = 7

	_, err := e.products.CreateProduct(ctx, e.token(t, admin), in, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "slug")
	assert.Contains(t, verr.Fields, "rating")
	assert.Contains(t, verr.Fields, "image")
	assert.Empty(t, e.images.uploaded)
}

func TestCreateProduct_ConflictRemovesImage(t *testing.T) {
	e := newEnv(t)
	admin := e.seed(t, "Admin", "admin@x.com", true, true)
	tok := e.token(t, admin)
	_, err := e.products.CreateProduct(ctx, tok, sampleProduct("Hammer", "hammer"), png)
	require.NoError(t, err)

	_, err = e.products.CreateProduct(ctx, tok, sampleProduct("Other", "hammer"), png)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, []string{"product-images/2.png"}, e.images.deleted)
}

func TestProductWrites_AdminOnly(t *testing.T) {
	e := newEnv(t)
	admin := e.seed(t, "Admin", "admin@x.com", true, true)
	user := e.seed(t, "U", "u@x.com", false, true)
	p, err := e.products.CreateProduct(ctx, e.token(t, admin), sampleProduct("Hammer", "hammer"), png)
	require.NoError(t, err)
	tok := e.token(t, user)

	_, err = e.products.CreateProduct(ctx, tok, sampleProduct("Saw", "saw"), png)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = e.products.UpdateProduct(ctx, tok, p.ID, sampleProduct("Saw", "saw"), nil)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, e.products.DeleteProduct(ctx, tok, p.ID), ErrForbidden)
	assert.ErrorIs(t, e.products.DeleteProduct(ctx, "", p.ID), ErrUnauthenticated)

	_, err = e.products.GetProduct(ctx, p.ID)
	assert.NoError(t, err)
}

func TestUpdateProduct_ReplacesImage(t *testing.T) {
	e := newEnv(t)
	admin := e.seed(t, "Admin", "admin@x.com", true, true)
	tok := e.token(t, admin)
	p, err := e.products.CreateProduct(ctx, tok, sampleProduct("Hammer", "hammer"), png)
	require.NoError(t, err)

	in := sampleProduct("Hammer XL", "hammer-xl")
	in.Price = 25
	updated, err := e.products.UpdateProduct(ctx, tok, p.ID, in, nil)
	require.NoError(t, err)
	assert.Equal(t, "hammer-xl", updated.Slug)
	assert.Equal(t, p.ImagePublicID, updated.ImagePublicID)
	assert.Empty(t, e.images.deleted)

	updated, err = e.products.UpdateProduct(ctx, tok, p.ID, in, png)
	require.NoError(t, err)
	assert.Equal(t, "product-images/2.png", updated.ImagePublicID)
	assert.Equal(t, []string{"product-images/1.png"}, e.images.deleted)

	_, err = e.products.UpdateProduct(ctx, tok, "missing", in, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	e := newEnv(t)
	e.images.deleteErr = errors.New("media host down")
	admin := e.seed(t, "Admin", "admin@x.com", true, true)
	tok := e.token(t, admin)
	p, err := e.products.CreateProduct(ctx, tok, sampleProduct("Hammer", "hammer"), png)
	require.NoError(t, err)

	require.NoError(t, e.products.DeleteProduct(ctx, tok, p.ID))
	assert.Equal(t, []string{"product-images/1.png"}, e.images.deleted)
	_, err = e.products.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, e.products.DeleteProduct(ctx, tok, p.ID), ErrNotFound)
}
