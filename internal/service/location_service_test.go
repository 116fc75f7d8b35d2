package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/shorescore/internal/db"
	"github.com/vbonduro/shorescore/internal/domain"
	"github.com/vbonduro/shorescore/internal/store"
)

// stubPhotoStore is a minimal in-memory photostore.PhotoStore for tests.
type stubPhotoStore struct {
	saved   map[string][]byte
	saveErr error
	n       int
}

func newStubPhotoStore() *stubPhotoStore {
	return &stubPhotoStore{saved: make(map[string][]byte)}
}

func (s *stubPhotoStore) Save(_ context.Context, locationID int64, _ string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, _ := io.ReadAll(r)
	s.n++
	key := strconv.FormatInt(locationID, 10) + "/" + strconv.Itoa(s.n) + ".jpg"
	s.saved[key] = data
	return key, nil
}

func (s *stubPhotoStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.saved[key]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "image/jpeg", nil
}

func (s *stubPhotoStore) Delete(_ context.Context, key string) error {
	if _, ok := s.saved[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.saved, key)
	return nil
}

func newTestLocationService(t *testing.T) (*LocationService, *stubPhotoStore) {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	stg := newStubPhotoStore()
	svc := NewLocationService(
		store.NewLocationStore(d),
		store.NewPhotoStore(d),
		stg,
		slog.Default(),
	)
	return svc, stg
}

func TestLocationServiceCreateLocation(t *testing.T) {
	svc, _ := newTestLocationService(t)

	loc, err := svc.CreateLocation(context.Background(), "Long Beach", "Sandy", 33.76, -118.19, nil)
	require.NoError(t, err)
	assert.NotZero(t, loc.ID)
	assert.Len(t, loc.Tags, 7)
	assert.Len(t, loc.Features, 4)
	assert.Equal(t, "/assets/images/dbimg/long-beach-1.jpg", loc.ImagePathMostPopular())
}

func TestLocationServiceCreateLocationInvalid(t *testing.T) {
	svc, _ := newTestLocationService(t)

	_, err := svc.CreateLocation(context.Background(), "", "", 0, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestLocationServiceGetLocationMissing(t *testing.T) {
	svc, _ := newTestLocationService(t)

	_, err := svc.GetLocation(context.Background(), 12)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationServiceNearby(t *testing.T) {
	svc, _ := newTestLocationService(t)
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, "Origin", "", 0, 0, nil)
	require.NoError(t, err)
	_, err = svc.CreateLocation(ctx, "Corner", "", 0.3, 0.4, nil)
	require.NoError(t, err)
	_, err = svc.CreateLocation(ctx, "Box Edge", "", 0.55, 0.55, nil)
	require.NoError(t, err)
	_, err = svc.CreateLocation(ctx, "Far", "", 5, 5, nil)
	require.NoError(t, err)

	nearby, err := svc.Nearby(ctx, 0, 0, 0.6)
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, "Origin", nearby[0].Name)
	assert.Equal(t, 0.0, nearby[0].Distance)
	assert.Equal(t, "Corner", nearby[1].Name)
	assert.InDelta(t, 0.5, nearby[1].Distance, 1e-9)
}

func TestLocationServiceNearbyRejectsNonPositiveDistance(t *testing.T) {
	svc, _ := newTestLocationService(t)

	_, err := svc.Nearby(context.Background(), 0, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestLocationServiceUpdateLocation(t *testing.T) {
	svc, _ := newTestLocationService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, "Long Beach", "", 1, 1, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateLocation(ctx, loc.ID, "Long Beach Park", "Renamed", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "Long Beach Park", updated.Name)
	assert.Equal(t, "Renamed", updated.Description)
	assert.Equal(t, 2.0, updated.Latitude)
	assert.Equal(t, 3.0, updated.Longitude)

	_, err = svc.UpdateLocation(ctx, loc.ID, "", "", 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)

	_, err = svc.UpdateLocation(ctx, 999, "x", "", 0, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationServiceUploadAndDeletePhoto(t *testing.T) {
	svc, stg := newTestLocationService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, "Long Beach", "", 0, 0, nil)
	require.NoError(t, err)

	photo, err := svc.UploadPhoto(ctx, loc.ID, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, loc.ID, photo.LocationID)
	assert.Contains(t, stg.saved, photo.StorageKey)

	latest, err := svc.LatestPhoto(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, photo.ID, latest.ID)

	require.NoError(t, svc.DeletePhoto(ctx, photo.ID))
	assert.NotContains(t, stg.saved, photo.StorageKey)

	_, err = svc.LatestPhoto(ctx, loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePhoto(ctx, photo.ID), domain.ErrNotFound)
}

func TestLocationServiceDeletePhotoWithMissingFile(t *testing.T) {
	svc, stg := newTestLocationService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, "Long Beach", "", 0, 0, nil)
	require.NoError(t, err)
	photo, err := svc.UploadPhoto(ctx, loc.ID, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "1/1.jpg", photo.StorageKey)

	delete(stg.saved, photo.StorageKey)
	require.NoError(t, svc.DeletePhoto(ctx, photo.ID))

	_, err = svc.LatestPhoto(ctx, loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationServiceUploadPhotoUnknownLocation(t *testing.T) {
	svc, stg := newTestLocationService(t)

	_, err := svc.UploadPhoto(context.Background(), 5, []byte("jpeg"), "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, stg.saved)
}

func TestLocationServiceUploadPhotoStorageError(t *testing.T) {
	svc, stg := newTestLocationService(t)
	ctx := context.Background()
	stg.saveErr = errors.New("disk full")

	loc, err := svc.CreateLocation(ctx, "Long Beach", "", 0, 0, nil)
	require.NoError(t, err)

	_, err = svc.UploadPhoto(ctx, loc.ID, []byte("jpeg"), "image/jpeg")
	assert.Error(t, err)

	_, err = svc.LatestPhoto(ctx, loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationServiceDeleteLocationRemovesPhotoFiles(t *testing.T) {
	svc, stg := newTestLocationService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, "Long Beach", "", 0, 0, nil)
	require.NoError(t, err)
	_, err = svc.UploadPhoto(ctx, loc.ID, []byte("a"), "image/jpeg")
	require.NoError(t, err)
	_, err = svc.UploadPhoto(ctx, loc.ID, []byte("b"), "image/jpeg")
	require.NoError(t, err)
	require.Len(t, stg.saved, 2)

	require.NoError(t, svc.DeleteLocation(ctx, loc.ID))
	assert.Empty(t, stg.saved)

	_, err = svc.GetLocation(ctx, loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationServiceSearch(t *testing.T) {
	svc, _ := newTestLocationService(t)
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, "Sunset Beach", "", 0, 0, nil)
	require.NoError(t, err)
	_, err = svc.CreateLocation(ctx, "Ala Moana", "", 0, 0, nil)
	require.NoError(t, err)

	found, err := svc.SearchLocations(ctx, "sunset")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Sunset Beach", found[0].Name)

	all, err := svc.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
