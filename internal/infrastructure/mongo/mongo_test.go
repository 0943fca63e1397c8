package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
)

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(mongo.ErrNoDocuments), repo.ErrNotFound)
	assert.ErrorIs(t, mapErr(fmt.Errorf("find: %w", mongo.ErrNoDocuments)), repo.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, mapErr(dup), repo.ErrConflict)

	assert.ErrorIs(t, mapErr(context.DeadlineExceeded), repo.ErrUnavailable)
	assert.ErrorIs(t, mapErr(context.Canceled), context.Canceled)
	assert.NotErrorIs(t, mapErr(context.Canceled), repo.ErrUnavailable)

	other := errors.New("boom")
	assert.Equal(t, other, mapErr(other))
}

func TestObjectID_InvalidHexIsNotFound(t *testing.T) {
	_, err := objectID("not-hex")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	oid := bson.NewObjectID()
	got, err := objectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}

func TestAccountDocument_RoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &entity.Account{
		Name:           "Ana",
		Email:          "ana@x.com",
		PasswordHash:   "hash",
		IsAdmin:        true,
		EmailConfirmed: true,
		Image:          entity.ImageRef{URL: "http://img", PublicID: "user-images/1.png"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	doc := toAccountDocument(a)
	assert.True(t, doc.ID.IsZero())
	assert.Equal(t, "hash", doc.Password)
	assert.True(t, doc.ConfirmEmail)

	oid := bson.NewObjectID()
	doc.ID = oid
	back := doc.toEntity()
	a.ID = oid.Hex()
	assert.Equal(t, a, back)
}

func TestAccountDocument_BSONFieldNames(t *testing.T) {
	raw, err := bson.Marshal(toAccountDocument(&entity.Account{Name: "n", Email: "e", PasswordHash: "p"}))
	require.NoError(t, err)
	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))

	for _, k := range []string{"name", "email", "password", "isAdmin", "confirmEmail", "createdAt", "updatedAt"} {
		assert.Contains(t, m, k)
	}
	assert.NotContains(t, m, "_id")
	assert.NotContains(t, m, "image")
}

func TestPatchSet(t *testing.T) {
	now := time.Now()
	name, admin := "New", false
	set := patchSet(repo.AccountPatch{Name: &name, IsAdmin: &admin, Image: &entity.ImageRef{URL: "u", PublicID: "p"}}, now)

	assert.Equal(t, bson.M{
		"updatedAt":     now,
		"name":          "New",
		"isAdmin":       false,
		"image":         "u",
		"imagePublicId": "p",
	}, set)
}

func TestProductDocument_RoundTrip(t *testing.T) {
	p := &entity.Product{Name: "Phone", Slug: "phone", Price: 9.5, CountInStock: 3, Image: "u", ImagePublicID: "p"}
	doc := toProductDocument(p)
	oid := bson.NewObjectID()
	doc.ID = oid
	p.ID = oid.Hex()
	assert.Equal(t, p, doc.toEntity())
}
