package storage

import (
	"bytes"
	"context"
	"errors"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

// GCSHost stores images in a Google Cloud Storage bucket.
type GCSHost struct {
	Client  *storage.Client
	Bucket  string
	BaseURL string // optional CDN prefix; defaults to storage.googleapis.com
}

func NewGCSHost(client *storage.Client, bucket, baseURL string) (*GCSHost, error) {
	if client == nil || bucket == "" {
		return nil, errors.New("gcs not configured")
	}
	return &GCSHost{Client: client, Bucket: bucket, BaseURL: baseURL}, nil
}

func (h *GCSHost) Upload(ctx context.Context, data []byte, contentType, category string) (entity.ImageRef, error) {
	key := objectKey(category, contentType)
	if err := helpers.UploadObject(ctx, h.Client, h.Bucket, key, contentType, bytes.NewReader(data)); err != nil {
		return entity.ImageRef{}, err
	}
	return entity.ImageRef{URL: h.url(key), PublicID: key}, nil
}

func (h *GCSHost) Delete(ctx context.Context, publicID string) error {
	return helpers.DeleteObject(ctx, h.Client, h.Bucket, publicID)
}

func (h *GCSHost) url(key string) string {
	if h.BaseURL != "" {
		return joinURL(h.BaseURL, key)
	}
	return helpers.PublicURL(h.Bucket, key)
}
