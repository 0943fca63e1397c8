package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
)

const accountCollection = "users"

// accountDocument keeps the field names of the existing users collection.
type accountDocument struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Name          string        `bson:"name"`
	Email         string        `bson:"email"`
	Password      string        `bson:"password"`
	IsAdmin       bool          `bson:"isAdmin"`
	ConfirmEmail  bool          `bson:"confirmEmail"`
	Image         string        `bson:"image,omitempty"`
	ImagePublicID string        `bson:"imagePublicId,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt"`
}

func toAccountDocument(a *entity.Account) accountDocument {
	return accountDocument{
		Name:          a.Name,
		Email:         a.Email,
		Password:      a.PasswordHash,
		IsAdmin:       a.IsAdmin,
		ConfirmEmail:  a.EmailConfirmed,
		Image:         a.Image.URL,
		ImagePublicID: a.Image.PublicID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (d accountDocument) toEntity() *entity.Account {
	return &entity.Account{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.Password,
		IsAdmin:        d.IsAdmin,
		EmailConfirmed: d.ConfirmEmail,
		Image:          entity.ImageRef{URL: d.Image, PublicID: d.ImagePublicID},
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// patchSet builds the $set document for a patch.
func patchSet(p repo.AccountPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.PasswordHash != nil {
		set["password"] = *p.PasswordHash
	}
	if p.IsAdmin != nil {
		set["isAdmin"] = *p.IsAdmin
	}
	if p.EmailConfirmed != nil {
		set["confirmEmail"] = *p.EmailConfirmed
	}
	if p.Image != nil {
		set["image"] = p.Image.URL
		set["imagePublicId"] = p.Image.PublicID
	}
	return set
}

type AccountRepository struct {
	coll *mongo.Collection
}

// NewAccountRepository ensures the unique email index exists. Uniqueness is
// enforced by that index, not by lookups before insert.
func NewAccountRepository(ctx context.Context, db *mongo.Database) (*AccountRepository, error) {
	coll := db.Collection(accountCollection)
	if _, err := coll.Indexes().CreateOne(ctx, uniqueIndex("email")); err != nil {
		return nil, err
	}
	return &AccountRepository{coll: coll}, nil
}

var _ repo.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	res, err := r.coll.InsertOne(ctx, toAccountDocument(a))
	if err != nil {
		return mapErr(err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return errors.New("inserted id is not an ObjectID")
	}
	a.ID = oid.Hex()
	return nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*entity.Account, error) {
	var doc accountDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toEntity(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) update(ctx context.Context, filter, set bson.M) (*entity.Account, error) {
	var doc accountDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mapErr(err)
	}
	return doc.toEntity(), nil
}

func (r *AccountRepository) Update(ctx context.Context, id string, patch repo.AccountPatch) (*entity.Account, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.update(ctx, bson.M{"_id": oid}, patchSet(patch, time.Now().UTC()))
}

// MarkEmailConfirmed matches on confirmEmail=false so only one caller wins.
func (r *AccountRepository) MarkEmailConfirmed(ctx context.Context, id string) (*entity.Account, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.update(ctx,
		bson.M{"_id": oid, "confirmEmail": false},
		bson.M{"confirmEmail": true, "updatedAt": time.Now().UTC()},
	)
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var out []*entity.Account
	for cursor.Next(ctx) {
		var doc accountDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
