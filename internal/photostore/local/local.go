package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/vbonduro/shorescore/internal/domain"
	"github.com/vbonduro/shorescore/internal/photostore"
)

// keyPattern matches every key Save hands out: the location ID, then a UUID
// file name with a known extension.
var keyPattern = regexp.MustCompile(`^([1-9][0-9]*)/([0-9a-f-]{36})(\.[a-z]+)$`)

// Store keeps photos on disk in one directory per location:
// <base>/<location id>/<uuid><ext>.
type Store struct {
	basePath string
}

func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save streams r into a temp file in the location's directory and renames it
// into place once fully written.
func (s *Store) Save(ctx context.Context, locationID int64, mimeType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext, ok := photostore.Extension(mimeType)
	if !ok {
		return "", fmt.Errorf("%w: %s", photostore.ErrUnsupportedType, mimeType)
	}
	if locationID <= 0 {
		return "", fmt.Errorf("%w: location %d", photostore.ErrInvalidKey, locationID)
	}

	dir := strconv.FormatInt(locationID, 10)
	if err := os.MkdirAll(filepath.Join(s.basePath, dir), 0755); err != nil {
		return "", fmt.Errorf("failed to create location directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Join(s.basePath, dir), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	discard := func() {
		if rerr := os.Remove(tmp.Name()); rerr != nil {
			slog.Error("failed to remove partial photo", "path", tmp.Name(), "error", rerr)
		}
	}

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		discard()
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		discard()
		return "", fmt.Errorf("failed to close photo: %w", err)
	}

	key := path.Join(dir, uuid.NewString()+ext)
	if err := os.Rename(tmp.Name(), s.filePath(key)); err != nil {
		discard()
		return "", fmt.Errorf("failed to store photo: %w", err)
	}
	return key, nil
}

func (s *Store) Get(_ context.Context, storageKey string) (io.ReadCloser, string, error) {
	mimeType, err := parseKey(storageKey)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(s.filePath(storageKey))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("photo %s: %w", storageKey, domain.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open photo: %w", err)
	}
	return f, mimeType, nil
}

// Delete removes the photo, and the location's directory once it is empty.
func (s *Store) Delete(_ context.Context, storageKey string) error {
	if _, err := parseKey(storageKey); err != nil {
		return err
	}

	err := os.Remove(s.filePath(storageKey))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("photo %s: %w", storageKey, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	// Fails while the location still has photos.
	_ = os.Remove(filepath.Dir(s.filePath(storageKey)))
	return nil
}

func (s *Store) filePath(storageKey string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(storageKey))
}

// parseKey validates a storage key and returns the MIME type its extension
// stands for.
func parseKey(storageKey string) (string, error) {
	m := keyPattern.FindStringSubmatch(storageKey)
	if m == nil {
		return "", fmt.Errorf("%w: %q", photostore.ErrInvalidKey, storageKey)
	}
	mimeType, ok := photostore.MimeType(m[3])
	if !ok {
		return "", fmt.Errorf("%w: %q", photostore.ErrInvalidKey, storageKey)
	}
	return mimeType, nil
}
