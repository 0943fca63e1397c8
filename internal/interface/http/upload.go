package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/shop-admin-dashboard/internal/application"
)

// readImage returns the image uploaded under field, or nil when the request
// carries none. The content type is sniffed from the bytes; the client's
// claim is ignored.
func readImage(c *gin.Context, field string, maxBytes int64) (*application.ImageUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, invalidFile(field, "unreadable file")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, invalidFile(field, fmt.Sprintf("max size %d bytes", maxBytes))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, invalidFile(field, "unreadable file")
	}
	defer func() { _ = f.Close() }()

	r := io.Reader(f)
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, invalidFile(field, "unreadable file")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, invalidFile(field, fmt.Sprintf("max size %d bytes", maxBytes))
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, invalidFile(field, "must be an image")
	}
	return &application.ImageUpload{Data: data, ContentType: mt.String()}, nil
}

func invalidFile(field, msg string) error {
	return &application.ValidationError{Fields: map[string]string{field: msg}}
}
