package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcampos/vocadeck/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied, using the same open path as production.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
