package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/shorescore/internal/domain"
)

type FeatureStore struct {
	db *sql.DB
}

func NewFeatureStore(db *sql.DB) *FeatureStore {
	return &FeatureStore{db: db}
}

const featureColumns = `id, location_id, name, info, score, user_score, award, reliability, low_label, high_label, score_labels`

func scanFeature(row interface{ Scan(...any) error }) (*domain.Feature, error) {
	f := &domain.Feature{}
	var labels string
	err := row.Scan(&f.ID, &f.LocationID, &f.Name, &f.Info, &f.Score, &f.UserScore,
		&f.Award, &f.Reliability, &f.LowLabel, &f.HighLabel, &labels)
	f.ScoreLabels = domain.ParseScoreLabels(labels)
	return f, err
}

func (s *FeatureStore) GetByID(ctx context.Context, id int64) (*domain.Feature, error) {
	return getFeature(ctx, s.db, id)
}

func (s *FeatureStore) ListByLocationID(ctx context.Context, locationID int64) ([]*domain.Feature, error) {
	return listFeatures(ctx, s.db, locationID)
}

// ApplyScore records accountID's rating of a feature and makes it the
// feature's latest user score. The score must lie on the feature's scale.
func (s *FeatureStore) ApplyScore(ctx context.Context, featureID int64, accountID string, score int) (*domain.Feature, error) {
	var feature *domain.Feature
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		f, err := getFeature(ctx, tx, featureID)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("feature %d: %w", featureID, domain.ErrNotFound)
		}
		if !f.ValidScore(score) {
			return fmt.Errorf("feature %q score %d: %w", f.Name, score, domain.ErrInvalidScore)
		}

		if err := touchAccount(ctx, tx, accountID); err != nil {
			return err
		}

		prev, err := getVote(ctx, tx, accountID, domain.VoteKindFeature, featureID)
		if err != nil {
			return err
		}
		if err := recordVote(ctx, tx, prev, accountID, domain.VoteKindFeature, featureID, score); err != nil {
			return err
		}

		f.SetUserScore(score)
		if _, err := tx.ExecContext(ctx, `
			UPDATE features SET user_score = ? WHERE id = ?
		`, f.UserScore, f.ID); err != nil {
			return fmt.Errorf("failed to update feature: %w", err)
		}

		feature = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	return feature, nil
}

func getFeature(ctx context.Context, q queryer, id int64) (*domain.Feature, error) {
	f, err := scanFeature(q.QueryRowContext(ctx, `
		SELECT `+featureColumns+` FROM features WHERE id = ?
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}

	return f, nil
}

func listFeatures(ctx context.Context, q queryer, locationID int64) ([]*domain.Feature, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+featureColumns+` FROM features WHERE location_id = ? ORDER BY id ASC
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	defer closeRows(rows)

	var features []*domain.Feature
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feature: %w", err)
		}
		features = append(features, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating features: %w", err)
	}

	return features, nil
}

func insertFeature(ctx context.Context, q queryer, locationID int64, f *domain.Feature) error {
	result, err := q.ExecContext(ctx, `
		INSERT INTO features (location_id, name, info, score, user_score, award, reliability, low_label, high_label, score_labels)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, locationID, f.Name, f.Info, f.Score, f.UserScore, f.Award, f.Reliability, f.LowLabel, f.HighLabel, f.JoinedScoreLabels())
	if err != nil {
		return fmt.Errorf("failed to create feature %q: %w", f.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	f.ID = id
	f.LocationID = locationID
	return nil
}
