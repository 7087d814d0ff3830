package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAppliesFilesOnce(t *testing.T) {
	dir := t.TempDir()
	migration := `CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_widgets.sql"), []byte(migration), 0o644))

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	s.DB.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(dir))
	// Re-running must skip the already applied file.
	require.NoError(t, s.Migrate(dir))

	_, err = s.DB.Exec(`INSERT INTO widgets (name) VALUES ('a')`)
	assert.NoError(t, err)

	var applied int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestMigrateMissingDirectory(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.Error(t, s.Migrate(filepath.Join(t.TempDir(), "nope")))
}
