package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

// Authorizer resolves the acting account from a session token.
type Authorizer interface {
	RequireAdmin(ctx context.Context, token string) (*entity.Account, error)
}

type ProductInput struct {
	Name         string  `json:"name" form:"name" validate:"required,max=200"`
	Slug         string  `json:"slug" form:"slug" validate:"required,slug"`
	Brand        string  `json:"brand" form:"brand" validate:"required"`
	Category     string  `json:"category" form:"category" validate:"required"`
	Description  string  `json:"description" form:"description" validate:"required"`
	Price        float64 `json:"price" form:"price" validate:"gte=0"`
	CountInStock int     `json:"countInStock" form:"countInStock" validate:"gte=0"`
	Rating       float64 `json:"rating" form:"rating" validate:"gte=0,lte=5"`
	NumReviews   int     `json:"numReviews" form:"numReviews" validate:"gte=0"`
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	in.Brand = strings.TrimSpace(in.Brand)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
}

func (in ProductInput) apply(p *entity.Product) {
	p.Name = in.Name
	p.Slug = in.Slug
	p.Brand = in.Brand
	p.Category = in.Category
	p.Description = in.Description
	p.Price = in.Price
	p.CountInStock = in.CountInStock
	p.Rating = in.Rating
	p.NumReviews = in.NumReviews
}

// ProductService manages the catalogue. Reads are public, writes admin-only.
type ProductService struct {
	Repo        repo.ProductRepository
	Auth        Authorizer
	Images      ImageHost
	Logger      *logrus.Logger
	CallTimeout time.Duration
}

func NewProductService(r repo.ProductRepository, auth Authorizer, images ImageHost, logger *logrus.Logger, callTimeout time.Duration) *ProductService {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	return &ProductService{Repo: r, Auth: auth, Images: images, Logger: logger, CallTimeout: callTimeout}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	cctx, cancel := callCtx(ctx, s.CallTimeout)
	defer cancel()
	products, err := s.Repo.List(cctx)
	if err != nil {
		return nil, unavailable("list products", err)
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	cctx, cancel := callCtx(ctx, s.CallTimeout)
	defer cancel()
	p, err := s.Repo.FindByID(cctx, id)
	if err != nil {
		return nil, storeErr("find product", err, ErrNotFound)
	}
	return p, nil
}

// CreateProduct requires an image. On a name or slug conflict the uploaded
// image is removed again.
func (s *ProductService) CreateProduct(ctx context.Context, token string, in ProductInput, img *ImageUpload) (*entity.Product, error) {
	actor, err := s.Auth.RequireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}
	in.normalize()
	fields := validationFields(in)
	if img == nil {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["image"] = "is required"
	}
	if err := invalid(fields); err != nil {
		return nil, err
	}

	ref, err := s.upload(ctx, img)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &entity.Product{Image: ref.URL, ImagePublicID: ref.PublicID, CreatedAt: now, UpdatedAt: now}
	in.apply(p)

	cctx, cancel := callCtx(ctx, s.CallTimeout)
	err = s.Repo.Create(cctx, p)
	cancel()
	if err != nil {
		s.deleteImage(ctx, ref.PublicID, actor.ID)
		return nil, storeErr("create product", err, ErrNotFound)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": actor.ID, "product_id": p.ID}).Info("product created")
	return p, nil
}

// UpdateProduct replaces every editable field; img is optional.
func (s *ProductService) UpdateProduct(ctx context.Context, token, id string, in ProductInput, img *ImageUpload) (*entity.Product, error) {
	actor, err := s.Auth.RequireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}
	in.normalize()
	if err := invalid(validationFields(in)); err != nil {
		return nil, err
	}
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPublicID := ""
	if img != nil {
		ref, err := s.upload(ctx, img)
		if err != nil {
			return nil, err
		}
		oldPublicID = p.ImagePublicID
		p.Image, p.ImagePublicID = ref.URL, ref.PublicID
	}
	in.apply(p)
	p.UpdatedAt = time.Now().UTC()

	cctx, cancel := callCtx(ctx, s.CallTimeout)
	err = s.Repo.Update(cctx, p)
	cancel()
	if err != nil {
		if img != nil {
			s.deleteImage(ctx, p.ImagePublicID, actor.ID)
		}
		return nil, storeErr("update product", err, ErrNotFound)
	}
	if oldPublicID != "" && oldPublicID != p.ImagePublicID {
		s.deleteImage(ctx, oldPublicID, actor.ID)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": actor.ID, "product_id": p.ID}).Info("product updated")
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, token, id string) error {
	actor, err := s.Auth.RequireAdmin(ctx, token)
	if err != nil {
		return err
	}
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	s.deleteImage(ctx, p.ImagePublicID, actor.ID)

	cctx, cancel := callCtx(ctx, s.CallTimeout)
	err = s.Repo.Delete(cctx, p.ID)
	cancel()
	if err != nil {
		return storeErr("delete product", err, ErrNotFound)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": actor.ID, "product_id": p.ID}).Info("product deleted")
	return nil
}

func (s *ProductService) upload(ctx context.Context, img *ImageUpload) (entity.ImageRef, error) {
	if s.Images == nil {
		return entity.ImageRef{}, unavailable("upload image", errImagesDisabled)
	}
	cctx, cancel := callCtx(ctx, s.CallTimeout)
	defer cancel()
	ref, err := s.Images.Upload(cctx, img.Data, img.ContentType, CategoryProduct)
	if err != nil {
		return entity.ImageRef{}, unavailable("upload image", err)
	}
	return ref, nil
}

func (s *ProductService) deleteImage(ctx context.Context, publicID, actorID string) {
	if publicID == "" || s.Images == nil {
		return
	}
	cctx, cancel := callCtx(ctx, s.CallTimeout)
	defer cancel()
	if err := s.Images.Delete(cctx, publicID); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": actorID, "public_id": publicID}).Warn("image delete failed")
	}
}
