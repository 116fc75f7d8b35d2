package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/shorescore/internal/domain"
)

type VoteStore struct {
	db *sql.DB
}

func NewVoteStore(db *sql.DB) *VoteStore {
	return &VoteStore{db: db}
}

// GetForAccount returns the account's vote on the given tag or feature, or nil
// if it has not voted.
func (s *VoteStore) GetForAccount(ctx context.Context, accountID string, kind domain.VoteKind, parentID int64) (*domain.Vote, error) {
	return getVote(ctx, s.db, accountID, kind, parentID)
}

func (s *VoteStore) ListByAccount(ctx context.Context, accountID string) ([]*domain.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, kind, parent_id, score, created_at, updated_at FROM votes
		WHERE account_id = ? ORDER BY id ASC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer closeRows(rows)

	var votes []*domain.Vote
	for rows.Next() {
		v := &domain.Vote{}
		if err := rows.Scan(&v.ID, &v.AccountID, &v.Kind, &v.ParentID, &v.Score, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}

	return votes, nil
}

func getVote(ctx context.Context, q queryer, accountID string, kind domain.VoteKind, parentID int64) (*domain.Vote, error) {
	v := &domain.Vote{}
	err := q.QueryRowContext(ctx, `
		SELECT id, account_id, kind, parent_id, score, created_at, updated_at FROM votes
		WHERE account_id = ? AND kind = ? AND parent_id = ?
	`, accountID, kind, parentID).Scan(&v.ID, &v.AccountID, &v.Kind, &v.ParentID, &v.Score, &v.CreatedAt, &v.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return v, nil
}

// recordVote overwrites prev when it is non-nil and inserts a new vote
// otherwise.
func recordVote(ctx context.Context, q queryer, prev *domain.Vote, accountID string, kind domain.VoteKind, parentID int64, score int) error {
	if prev != nil {
		if _, err := q.ExecContext(ctx, `
			UPDATE votes SET score = ?, updated_at = datetime('now') WHERE id = ?
		`, score, prev.ID); err != nil {
			return fmt.Errorf("failed to update vote: %w", err)
		}
	} else {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO votes (account_id, kind, parent_id, score) VALUES (?, ?, ?, ?)
		`, accountID, kind, parentID, score); err != nil {
			return fmt.Errorf("failed to create vote: %w", err)
		}
	}

	return nil
}
