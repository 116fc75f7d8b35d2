package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vbonduro/shorescore/internal/db"
	"github.com/vbonduro/shorescore/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// openFileTestDB opens a database file with the production connection
// settings, so several connections contend for the write lock.
func openFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "shorescore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func createTestLocation(t *testing.T, d *sql.DB, name string, lat, lng float64) *domain.Location {
	t.Helper()
	loc, err := NewLocationStore(d).Create(context.Background(), domain.NewLocation(name, "", lat, lng))
	require.NoError(t, err)
	return loc
}

func createTestAccount(t *testing.T, d *sql.DB, name string) *domain.Account {
	t.Helper()
	account, err := NewAccountStore(d).Create(context.Background(), name)
	require.NoError(t, err)
	return account
}
