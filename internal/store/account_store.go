package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vbonduro/shorescore/internal/domain"
)

type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, name string) (*domain.Account, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name) VALUES (?, ?)
	`, id, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *AccountStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account := &domain.Account{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM accounts WHERE id = ?
	`, id).Scan(&account.ID, &account.Name, &account.CreatedAt, &account.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// touchAccount records activity on the account. It fails with
// domain.ErrNotFound if the account does not exist.
func touchAccount(ctx context.Context, q queryer, id string) error {
	result, err := q.ExecContext(ctx, `
		UPDATE accounts SET updated_at = datetime('now') WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
