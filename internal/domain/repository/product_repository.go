package repository

import (
	"context"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
)

// ProductRepository defines the persistence contract for products.
// Name and slug collisions surface as ErrConflict.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Product, error)
}
