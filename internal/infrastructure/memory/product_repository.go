package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
)

// ProductRepository keeps products in process memory with unique name and
// slug, mirroring the Mongo indexes.
type ProductRepository struct {
	mu   sync.RWMutex
	byID map[string]*entity.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{byID: map[string]*entity.Product{}}
}

var _ repo.ProductRepository = (*ProductRepository)(nil)

// clashes must be called with the lock held.
func (r *ProductRepository) clashes(p *entity.Product) bool {
	for id, other := range r.byID {
		if id != p.ID && (other.Name == p.Name || other.Slug == p.Slug) {
			return true
		}
	}
	return false
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, taken := r.byID[p.ID]; taken || r.clashes(p) {
		return repo.ErrConflict
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return repo.ErrNotFound
	}
	if r.clashes(p) {
		return repo.ErrConflict
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
