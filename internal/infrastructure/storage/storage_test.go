package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted []string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestObjectKey(t *testing.T) {
	k := objectKey("user", "image/png")
	assert.True(t, strings.HasPrefix(k, "user-images/"), k)
	assert.True(t, strings.HasSuffix(k, ".png"), k)

	assert.True(t, strings.HasPrefix(objectKey("product", "image/jpeg"), "product-images/"))
	assert.True(t, strings.HasPrefix(objectKey("other", "application/x-unknown"), "images/"))
	assert.NotEqual(t, objectKey("user", "image/png"), objectKey("user", "image/png"))
}

func TestS3Host_UploadAndDelete(t *testing.T) {
	api := &fakeS3{}
	h, err := NewS3Host(api, "bucket", "eu-west-1", "")
	require.NoError(t, err)

	ref, err := h.Upload(context.Background(), []byte("png-bytes"), "image/png", "product")
	require.NoError(t, err)

	assert.Equal(t, "bucket", aws.ToString(api.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(api.put.ContentType))
	assert.Equal(t, []byte("png-bytes"), api.body)
	assert.Equal(t, aws.ToString(api.put.Key), ref.PublicID)
	assert.Equal(t, "https://bucket.s3.eu-west-1.amazonaws.com/"+ref.PublicID, ref.URL)

	require.NoError(t, h.Delete(context.Background(), ref.PublicID))
	assert.Equal(t, []string{ref.PublicID}, api.deleted)
}

func TestS3Host_BaseURL(t *testing.T) {
	h, err := NewS3Host(&fakeS3{}, "bucket", "us-east-1", "http://cdn.local/")
	require.NoError(t, err)
	ref, err := h.Upload(context.Background(), []byte("x"), "image/webp", "user")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.local/"+ref.PublicID, ref.URL)
}

func TestS3Host_Errors(t *testing.T) {
	_, err := NewS3Host(nil, "bucket", "r", "")
	assert.Error(t, err)

	h, err := NewS3Host(&fakeS3{err: errors.New("denied")}, "bucket", "r", "")
	require.NoError(t, err)
	_, err = h.Upload(context.Background(), []byte("x"), "image/png", "user")
	assert.EqualError(t, err, "denied")
	assert.EqualError(t, h.Delete(context.Background(), "k"), "denied")
}

func TestNewGCSHost_RequiresClient(t *testing.T) {
	_, err := NewGCSHost(nil, "bucket", "")
	assert.Error(t, err)
}
