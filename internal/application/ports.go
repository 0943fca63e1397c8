package application

import (
	"context"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
)

// Image categories, each stored under its own folder on the image host.
const (
	CategoryUser    = "user"
	CategoryProduct = "product"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

type MailSender interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

type ImageHost interface {
	Upload(ctx context.Context, data []byte, contentType, category string) (entity.ImageRef, error)
	Delete(ctx context.Context, publicID string) error
}

// AccountIndex keeps a searchable copy of account views.
type AccountIndex interface {
	Index(ctx context.Context, a *entity.Account) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.AccountView, error)
}

// ImageUpload is an already sniffed image file.
type ImageUpload struct {
	Data        []byte
	ContentType string
}
