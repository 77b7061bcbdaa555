// Package testutil holds helpers shared by package tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/gshell/internal/store"
	"github.com/footprint-tools/gshell/internal/store/migrations"
)

// NewTestStore creates an in-memory store with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, migrations.Run(db), "failed to run migrations")

	return store.NewWithDB(db)
}

// SeedAliases stores each alias in s.
func SeedAliases(t *testing.T, s *store.Store, aliases map[string]string) {
	t.Helper()

	for name, target := range aliases {
		require.NoError(t, s.PutAlias(name, target), "failed to seed alias %s", name)
	}
}
