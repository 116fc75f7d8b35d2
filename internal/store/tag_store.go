package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/shorescore/internal/domain"
)

type TagStore struct {
	db *sql.DB
}

func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `id, location_id, name, info, yes_count, no_count, accuracy`

func scanTag(row interface{ Scan(...any) error }) (*domain.Tag, error) {
	t := &domain.Tag{}
	err := row.Scan(&t.ID, &t.LocationID, &t.Name, &t.Info, &t.Yes, &t.No, &t.Accuracy)
	return t, err
}

func (s *TagStore) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	return getTag(ctx, s.db, id)
}

func (s *TagStore) ListByLocationID(ctx context.Context, locationID int64) ([]*domain.Tag, error) {
	return listTags(ctx, s.db, locationID)
}

// ApplyVote records accountID's vote on a tag and updates the tag's tallies
// in a single transaction. A previous vote by the same account is withdrawn
// from the tally before the new one is counted.
func (s *TagStore) ApplyVote(ctx context.Context, tagID int64, accountID string, score int) (*domain.Tag, error) {
	var tag *domain.Tag
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := getTag(ctx, tx, tagID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("tag %d: %w", tagID, domain.ErrNotFound)
		}

		if err := touchAccount(ctx, tx, accountID); err != nil {
			return err
		}

		prev, err := getVote(ctx, tx, accountID, domain.VoteKindTag, tagID)
		if err != nil {
			return err
		}

		var prevScore *int
		if prev != nil {
			prevScore = &prev.Score
		}
		t.Revote(prevScore, score)

		if err := recordVote(ctx, tx, prev, accountID, domain.VoteKindTag, tagID, score); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE tags SET yes_count = ?, no_count = ?, accuracy = ? WHERE id = ?
		`, t.Yes, t.No, t.Accuracy, t.ID); err != nil {
			return fmt.Errorf("failed to update tag: %w", err)
		}

		tag = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tag, nil
}

func getTag(ctx context.Context, q queryer, id int64) (*domain.Tag, error) {
	t, err := scanTag(q.QueryRowContext(ctx, `
		SELECT `+tagColumns+` FROM tags WHERE id = ?
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return t, nil
}

func listTags(ctx context.Context, q queryer, locationID int64) ([]*domain.Tag, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+tagColumns+` FROM tags WHERE location_id = ? ORDER BY id ASC
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer closeRows(rows)

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

func insertTag(ctx context.Context, q queryer, locationID int64, t *domain.Tag) error {
	result, err := q.ExecContext(ctx, `
		INSERT INTO tags (location_id, name, info, yes_count, no_count, accuracy) VALUES (?, ?, ?, ?, ?, ?)
	`, locationID, t.Name, t.Info, t.Yes, t.No, t.Accuracy)
	if err != nil {
		return fmt.Errorf("failed to create tag %q: %w", t.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	t.ID = id
	t.LocationID = locationID
	return nil
}
