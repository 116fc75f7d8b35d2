package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vbonduro/shorescore/internal/domain"
)

type LocationStore struct {
	db *sql.DB
}

func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

const locationColumns = `id, name, description, latitude, longitude, type, creator_id, created_at, updated_at`

func scanLocation(row interface{ Scan(...any) error }) (*domain.Location, error) {
	l := &domain.Location{}
	err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Latitude, &l.Longitude, &l.Type, &l.CreatorID, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// Create inserts the location together with its features and tags and
// returns it as stored.
func (s *LocationStore) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	var id int64
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO locations (name, search_name, description, latitude, longitude, type, creator_id) VALUES (?, ?, ?, ?, ?, ?, ?)
		`, loc.Name, foldName(loc.Name), loc.Description, loc.Latitude, loc.Longitude, loc.Type, loc.CreatorID)
		if err != nil {
			return fmt.Errorf("failed to create location: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}

		for _, f := range loc.Features {
			if err := insertFeature(ctx, tx, id, f); err != nil {
				return err
			}
		}
		for _, t := range loc.Tags {
			if err := insertTag(ctx, tx, id, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// GetByID loads a location with its features, tags and photos, or returns nil
// if there is no such location.
func (s *LocationStore) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	loc, err := scanLocation(s.db.QueryRowContext(ctx, `
		SELECT `+locationColumns+` FROM locations WHERE id = ?
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	if loc.Features, err = listFeatures(ctx, s.db, id); err != nil {
		return nil, err
	}
	if loc.Tags, err = listTags(ctx, s.db, id); err != nil {
		return nil, err
	}
	if loc.Photos, err = listPhotos(ctx, s.db, id); err != nil {
		return nil, err
	}

	return loc, nil
}

// List returns every location ordered by name. Features, tags and photos are
// not loaded.
func (s *LocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	return s.query(ctx, `
		SELECT `+locationColumns+` FROM locations ORDER BY name ASC
	`)
}

// Search matches locations whose name contains query, ignoring case. query
// is matched literally; LIKE wildcards have no special meaning.
func (s *LocationStore) Search(ctx context.Context, query string) ([]*domain.Location, error) {
	return s.query(ctx, `
		SELECT `+locationColumns+` FROM locations
		WHERE instr(search_name, ?) > 0
		ORDER BY name ASC
	`, foldName(query))
}

// foldName is the case-insensitive form of a name stored in search_name.
func foldName(name string) string {
	return strings.ToLower(name)
}

// WithinBox returns locations inside the given latitude/longitude bounds.
func (s *LocationStore) WithinBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]*domain.Location, error) {
	return s.query(ctx, `
		SELECT `+locationColumns+` FROM locations
		WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?
	`, minLat, maxLat, minLng, maxLng)
}

func (s *LocationStore) query(ctx context.Context, query string, args ...any) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer closeRows(rows)

	var locations []*domain.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

// Update writes the static attributes of loc. Features, tags and photos are
// left untouched.
func (s *LocationStore) Update(ctx context.Context, loc *domain.Location) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE locations SET name = ?, search_name = ?, description = ?, latitude = ?, longitude = ?, type = ?, updated_at = datetime('now')
		WHERE id = ?
	`, loc.Name, foldName(loc.Name), loc.Description, loc.Latitude, loc.Longitude, loc.Type, loc.ID)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("location %d: %w", loc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the location together with its features, tags and photo
// records. Votes on those tags and features are removed as well.
func (s *LocationStore) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM votes
			WHERE (kind = ? AND parent_id IN (SELECT id FROM tags WHERE location_id = ?))
			   OR (kind = ? AND parent_id IN (SELECT id FROM features WHERE location_id = ?))
		`, domain.VoteKindTag, id, domain.VoteKindFeature, id); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			DELETE FROM locations WHERE id = ?
		`, id)
		if err != nil {
			return fmt.Errorf("failed to delete location: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			return fmt.Errorf("location %d: %w", id, domain.ErrNotFound)
		}

		return nil
	})
}
