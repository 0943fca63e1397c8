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

const productCollection = "products"

type productDocument struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Name          string        `bson:"name"`
	Slug          string        `bson:"slug"`
	Brand         string        `bson:"brand"`
	Category      string        `bson:"category"`
	Description   string        `bson:"description"`
	Price         float64       `bson:"price"`
	CountInStock  int           `bson:"countInStock"`
	Rating        float64       `bson:"rating"`
	NumReviews    int           `bson:"numReviews"`
	Image         string        `bson:"image"`
	ImagePublicID string        `bson:"imagePublicId"`
	CreatedAt     time.Time     `bson:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt"`
}

func toProductDocument(p *entity.Product) productDocument {
	return productDocument{
		Name:          p.Name,
		Slug:          p.Slug,
		Brand:         p.Brand,
		Category:      p.Category,
		Description:   p.Description,
		Price:         p.Price,
		CountInStock:  p.CountInStock,
		Rating:        p.Rating,
		NumReviews:    p.NumReviews,
		Image:         p.Image,
		ImagePublicID: p.ImagePublicID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d productDocument) toEntity() *entity.Product {
	return &entity.Product{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Slug:          d.Slug,
		Brand:         d.Brand,
		Category:      d.Category,
		Description:   d.Description,
		Price:         d.Price,
		CountInStock:  d.CountInStock,
		Rating:        d.Rating,
		NumReviews:    d.NumReviews,
		Image:         d.Image,
		ImagePublicID: d.ImagePublicID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(ctx context.Context, db *mongo.Database) (*ProductRepository, error) {
	coll := db.Collection(productCollection)
	if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{uniqueIndex("name"), uniqueIndex("slug")}); err != nil {
		return nil, err
	}
	return &ProductRepository{coll: coll}, nil
}

var _ repo.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	res, err := r.coll.InsertOne(ctx, toProductDocument(p))
	if err != nil {
		return mapErr(err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return errors.New("inserted id is not an ObjectID")
	}
	p.ID = oid.Hex()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toEntity(), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	oid, err := objectID(p.ID)
	if err != nil {
		return err
	}
	doc := toProductDocument(p)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
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

func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	out := []*entity.Product{}
	for cursor.Next(ctx) {
		var doc productDocument
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
