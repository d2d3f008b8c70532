package iocache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quantfold/keydriver/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRuns_NoneBackend(t *testing.T) {
	err := MigrateRuns(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateRuns_SQLite(t *testing.T) {
	// Create a temporary database file for testing
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_migration.db")

	// Run migration to latest version (should go to version 1)
	err := MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	// Verify migration was successful by checking the database file exists
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	err = MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// Run migration to a specific version (version 1)
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)

	// Rollback to version 0
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 0)
	assert.NoError(t, err)

	// Migrate back up to version 1
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)
}

func TestMigrateRuns_SQLiteInMemory(t *testing.T) {
	// Test with in-memory database
	err := MigrateRuns(schema.SQLiteBackend, ":memory:", -1)
	require.NoError(t, err)
}

func TestMigrateRuns_UnsupportedBackend(t *testing.T) {
	err := MigrateRuns(schema.DatabaseBackend("oracle"), "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestMigrateRuns_TablesUsable(t *testing.T) {
	// A migrated database must accept run store writes without further setup.
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "migrated.db")

	require.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, -1))

	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.EqualValues(t, 0, status.TotalRuns)
}
