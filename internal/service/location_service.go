package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/vbonduro/shorescore/internal/domain"
	"github.com/vbonduro/shorescore/internal/photostore"
)

// locationRepository is the subset of store.LocationStore that LocationService requires.
type locationRepository interface {
	Create(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	List(ctx context.Context) ([]*domain.Location, error)
	Search(ctx context.Context, query string) ([]*domain.Location, error)
	WithinBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]*domain.Location, error)
	Update(ctx context.Context, loc *domain.Location) error
	Delete(ctx context.Context, id int64) error
}

// photoRepository is the subset of store.PhotoStore that LocationService requires.
type photoRepository interface {
	Create(ctx context.Context, locationID int64, storageKey, mimeType string) (*domain.Photo, error)
	GetByID(ctx context.Context, id int64) (*domain.Photo, error)
	GetLatestByLocationID(ctx context.Context, locationID int64) (*domain.Photo, error)
	Delete(ctx context.Context, id int64) error
}

type LocationService struct {
	locationStore locationRepository
	photoStore    photoRepository
	photoStg      photostore.PhotoStore
	logger        *slog.Logger
}

func NewLocationService(
	locationStore locationRepository,
	photoStore photoRepository,
	photoStg photostore.PhotoStore,
	logger *slog.Logger,
) *LocationService {
	return &LocationService{
		locationStore: locationStore,
		photoStore:    photoStore,
		photoStg:      photoStg,
		logger:        logger,
	}
}

// CreateLocation stores a new beach with the default features and tags.
// creatorID may be nil.
func (s *LocationService) CreateLocation(ctx context.Context, name, description string, lat, lng float64, creatorID *string) (*domain.Location, error) {
	loc := domain.NewLocation(name, description, lat, lng)
	loc.CreatorID = creatorID
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	created, err := s.locationStore.Create(ctx, loc)
	if err != nil {
		return nil, err
	}
	s.logger.Info("location created", "location_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *LocationService) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	loc, err := s.locationStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if loc == nil {
		return nil, fmt.Errorf("location %d: %w", id, domain.ErrNotFound)
	}
	return loc, nil
}

func (s *LocationService) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	return s.locationStore.List(ctx)
}

func (s *LocationService) SearchLocations(ctx context.Context, query string) ([]*domain.Location, error) {
	return s.locationStore.Search(ctx, query)
}

// NearbyLocation pairs a location with its distance, in degrees, from the
// point that was searched.
type NearbyLocation struct {
	*domain.Location
	Distance float64
}

// Nearby returns locations within maxDistance degrees of (lat, lng), nearest
// first.
func (s *LocationService) Nearby(ctx context.Context, lat, lng, maxDistance float64) ([]*NearbyLocation, error) {
	if maxDistance <= 0 {
		return nil, fmt.Errorf("%w: max distance must be positive", domain.ErrInvalidLocation)
	}

	candidates, err := s.locationStore.WithinBox(ctx, lat-maxDistance, lat+maxDistance, lng-maxDistance, lng+maxDistance)
	if err != nil {
		return nil, err
	}

	nearby := make([]*NearbyLocation, 0, len(candidates))
	for _, loc := range candidates {
		if d := loc.DistanceFrom(lat, lng); d <= maxDistance {
			nearby = append(nearby, &NearbyLocation{Location: loc, Distance: d})
		}
	}
	slices.SortStableFunc(nearby, func(a, b *NearbyLocation) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})
	return nearby, nil
}

// UpdateLocation replaces the static attributes of a location.
func (s *LocationService) UpdateLocation(ctx context.Context, id int64, name, description string, lat, lng float64) (*domain.Location, error) {
	loc, err := s.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	loc.Name = name
	loc.Description = description
	loc.Latitude = lat
	loc.Longitude = lng
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	if err := s.locationStore.Update(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return s.GetLocation(ctx, id)
}

// DeleteLocation removes the location and the files of all its photos.
func (s *LocationService) DeleteLocation(ctx context.Context, id int64) error {
	loc, err := s.GetLocation(ctx, id)
	if err != nil {
		return err
	}

	if err := s.locationStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	for _, photo := range loc.Photos {
		s.deletePhotoFile(ctx, photo)
	}

	s.logger.Info("location deleted", "location_id", id, "photos", len(loc.Photos))
	return nil
}

// UploadPhoto saves the image to storage and records it against the location.
func (s *LocationService) UploadPhoto(ctx context.Context, locationID int64, imageData []byte, mimeType string) (*domain.Photo, error) {
	s.logger.Info("upload photo started", "location_id", locationID, "mime_type", mimeType, "bytes", len(imageData))

	if _, err := s.GetLocation(ctx, locationID); err != nil {
		return nil, err
	}

	storageKey, err := s.photoStg.Save(ctx, locationID, mimeType, bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}
	s.logger.Debug("photo saved", "location_id", locationID, "storage_key", storageKey)

	photo, err := s.photoStore.Create(ctx, locationID, storageKey, mimeType)
	if err != nil {
		_ = s.photoStg.Delete(ctx, storageKey)
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}

	s.logger.Info("upload photo complete", "location_id", locationID, "photo_id", photo.ID)
	return photo, nil
}

// LatestPhoto returns the most recent photo of a location.
func (s *LocationService) LatestPhoto(ctx context.Context, locationID int64) (*domain.Photo, error) {
	photo, err := s.photoStore.GetLatestByLocationID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	if photo == nil {
		return nil, fmt.Errorf("photo for location %d: %w", locationID, domain.ErrNotFound)
	}
	return photo, nil
}

func (s *LocationService) DeletePhoto(ctx context.Context, photoID int64) error {
	photo, err := s.photoStore.GetByID(ctx, photoID)
	if err != nil {
		return fmt.Errorf("failed to get photo: %w", err)
	}
	if photo == nil {
		return fmt.Errorf("photo %d: %w", photoID, domain.ErrNotFound)
	}

	if err := s.photoStore.Delete(ctx, photoID); err != nil {
		return fmt.Errorf("failed to delete photo record: %w", err)
	}

	s.deletePhotoFile(ctx, photo)
	return nil
}

// deletePhotoFile removes the bytes behind a photo whose record is already
// gone. A file that is already missing is only worth a warning.
func (s *LocationService) deletePhotoFile(ctx context.Context, photo *domain.Photo) {
	err := s.photoStg.Delete(ctx, photo.StorageKey)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Warn("photo file already missing", "photo_id", photo.ID, "storage_key", photo.StorageKey)
	default:
		s.logger.Error("failed to delete photo file", "photo_id", photo.ID, "storage_key", photo.StorageKey, "error", err)
	}
}
