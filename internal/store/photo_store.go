package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/shorescore/internal/domain"
)

type PhotoStore struct {
	db *sql.DB
}

func NewPhotoStore(db *sql.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

const photoColumns = `id, location_id, storage_key, mime_type, uploaded_at`

func (s *PhotoStore) Create(ctx context.Context, locationID int64, storageKey, mimeType string) (*domain.Photo, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (location_id, storage_key, mime_type) VALUES (?, ?, ?)
	`, locationID, storageKey, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *PhotoStore) GetByID(ctx context.Context, id int64) (*domain.Photo, error) {
	photo := &domain.Photo{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+photoColumns+` FROM photos WHERE id = ?
	`, id).Scan(&photo.ID, &photo.LocationID, &photo.StorageKey, &photo.MimeType, &photo.UploadedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return photo, nil
}

// GetLatestByLocationID returns the most recently uploaded photo of a
// location, or nil if it has none.
func (s *PhotoStore) GetLatestByLocationID(ctx context.Context, locationID int64) (*domain.Photo, error) {
	photo := &domain.Photo{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+photoColumns+` FROM photos
		WHERE location_id = ? ORDER BY uploaded_at DESC, id DESC LIMIT 1
	`, locationID).Scan(&photo.ID, &photo.LocationID, &photo.StorageKey, &photo.MimeType, &photo.UploadedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return photo, nil
}

func (s *PhotoStore) ListByLocationID(ctx context.Context, locationID int64) ([]*domain.Photo, error) {
	return listPhotos(ctx, s.db, locationID)
}

func (s *PhotoStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM photos WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("photo %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func listPhotos(ctx context.Context, q queryer, locationID int64) ([]*domain.Photo, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+photoColumns+` FROM photos WHERE location_id = ? ORDER BY uploaded_at DESC, id DESC
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer closeRows(rows)

	var photos []*domain.Photo
	for rows.Next() {
		p := &domain.Photo{}
		if err := rows.Scan(&p.ID, &p.LocationID, &p.StorageKey, &p.MimeType, &p.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}

	return photos, nil
}
