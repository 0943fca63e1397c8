package storage

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// folder maps an image category to its folder on the host.
func folder(category string) string {
	switch category {
	case "user":
		return "user-images"
	case "product":
		return "product-images"
	default:
		return "images"
	}
}

// objectKey returns a fresh folder/uuid.ext key. The key doubles as the
// deletable id handed back to callers.
func objectKey(category, contentType string) string {
	ext := ""
	if m := mimetype.Lookup(contentType); m != nil {
		ext = m.Extension()
	}
	return folder(category) + "/" + uuid.NewString() + ext
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
