package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeMigrations(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestRunMigrations(t *testing.T) {
	db := newTestDB(t)
	dir := writeMigrations(t, map[string]string{
		"001_create_bills.sql": "CREATE TABLE bills (id TEXT PRIMARY KEY);",
		"002_add_index.sql":    "CREATE INDEX idx_bills_id ON bills(id);",
	})

	m := NewMigrator(db, zap.NewNop())
	require.NoError(t, m.RunMigrations(dir))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)

	// Re-running is a no-op: applied versions are skipped.
	require.NoError(t, m.RunMigrations(dir))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestRunMigrationsBadFilename(t *testing.T) {
	db := newTestDB(t)
	dir := writeMigrations(t, map[string]string{
		"not_versioned.sql": "SELECT 1;",
	})

	err := NewMigrator(db, zap.NewNop()).RunMigrations(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid migration filename")
}

func TestRunMigrationsRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	dir := writeMigrations(t, map[string]string{
		"001_broken.sql": "CREATE TABLE;",
	})

	err := NewMigrator(db, zap.NewNop()).RunMigrations(dir)
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 0, count, "failed migration must not be recorded")
}
