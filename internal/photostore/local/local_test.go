package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/shorescore/internal/domain"
	"github.com/vbonduro/shorescore/internal/photostore"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	return s, dir
}

func TestStoreSaveAndGet(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	key, err := s.Save(ctx, 7, "image/png", strings.NewReader("png bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "7/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.FileExists(t, filepath.Join(dir, "7", filepath.Base(key)))

	rc, mimeType, err := s.Get(ctx, key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	assert.Equal(t, "image/png", mimeType)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestStoreKeysAreUnique(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, err := s.Save(ctx, 1, "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := s.Save(ctx, 1, "image/jpeg", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStoreSaveRejects(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, 1, "image/bmp", strings.NewReader("x"))
	assert.ErrorIs(t, err, photostore.ErrUnsupportedType)

	_, err = s.Save(ctx, 0, "image/jpeg", strings.NewReader("x"))
	assert.ErrorIs(t, err, photostore.ErrInvalidKey)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Save(cancelled, 1, "image/jpeg", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestStoreSaveLeavesNothingOnWriteError(t *testing.T) {
	s, dir := newTestStore(t)

	_, err := s.Save(context.Background(), 3, "image/jpeg", failingReader{})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	entries, err := os.ReadDir(filepath.Join(dir, "3"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreDelete(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, 4, "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := s.Save(ctx, 4, "image/gif", strings.NewReader("b"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, first))
	assert.DirExists(t, filepath.Join(dir, "4"))

	_, _, err = s.Get(ctx, first)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, first), domain.ErrNotFound)

	require.NoError(t, s.Delete(ctx, second))
	assert.NoDirExists(t, filepath.Join(dir, "4"))
}

func TestStoreGetMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, _, err := s.Get(context.Background(), "9/00000000-0000-0000-0000-000000000000.jpg")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreRejectsForeignKeys(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{
		"../../etc/passwd",
		"1/../../etc/passwd",
		"/etc/passwd",
		"nonexistent.jpg",
		"1/00000000-0000-0000-0000-000000000000.exe",
		"0/00000000-0000-0000-0000-000000000000.jpg",
	} {
		_, _, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, photostore.ErrInvalidKey, key)
		assert.ErrorIs(t, s.Delete(ctx, key), photostore.ErrInvalidKey, key)
	}
}
