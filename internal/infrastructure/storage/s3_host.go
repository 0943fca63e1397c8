package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
)

// S3API is the subset of *s3.Client used by S3Host.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Host stores images in an S3 (or S3-compatible) bucket.
type S3Host struct {
	Client  S3API
	Bucket  string
	Region  string
	BaseURL string // required for S3-compatible hosts, optional on AWS
}

func NewS3Host(client S3API, bucket, region, baseURL string) (*S3Host, error) {
	if client == nil || bucket == "" {
		return nil, errors.New("s3 not configured")
	}
	return &S3Host{Client: client, Bucket: bucket, Region: region, BaseURL: baseURL}, nil
}

func (h *S3Host) Upload(ctx context.Context, data []byte, contentType, category string) (entity.ImageRef, error) {
	key := objectKey(category, contentType)
	_, err := h.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return entity.ImageRef{}, err
	}
	return entity.ImageRef{URL: h.url(key), PublicID: key}, nil
}

// Delete is idempotent: S3 reports success for missing keys.
func (h *S3Host) Delete(ctx context.Context, publicID string) error {
	_, err := h.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.Bucket),
		Key:    aws.String(publicID),
	})
	return err
}

func (h *S3Host) url(key string) string {
	if h.BaseURL != "" {
		return joinURL(h.BaseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.Bucket, h.Region, key)
}
