package photostore

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnsupportedType = errors.New("unsupported photo type")
	ErrInvalidKey      = errors.New("invalid photo key")
)

// PhotoStore holds the image bytes behind a domain.Photo. Missing photos are
// reported as domain.ErrNotFound.
type PhotoStore interface {
	// Save writes a photo of locationID and returns its storage key.
	Save(ctx context.Context, locationID int64, mimeType string, r io.Reader) (storageKey string, err error)
	// Get returns the photo and its MIME type. Callers must close the reader.
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Extension returns the file extension stored photos of mimeType get, and
// false for types that cannot be stored.
func Extension(mimeType string) (string, bool) {
	ext, ok := extensions[mimeType]
	return ext, ok
}

// MimeType is the inverse of Extension.
func MimeType(ext string) (string, bool) {
	for mime, e := range extensions {
		if e == ext {
			return mime, true
		}
	}
	return "", false
}
