package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "drafts.db")

	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	// Migrating twice is a no-op.
	require.NoError(t, Migrate(db))

	v, err := SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	assert.NoError(t, HealthCheck(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM draft").Scan(&count))
	assert.Zero(t, count)
}

func TestHealthCheck_ClosedDatabase(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	db.Close()

	assert.Error(t, HealthCheck(db))
}
