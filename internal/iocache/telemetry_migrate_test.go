package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/nutriscope/nutriscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateTelemetry(t *testing.T) {
	t.Run("up and down", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "telemetry.db")

		// Migrate up to latest
		require.NoError(t, MigrateTelemetry(schema.SQLiteBackend, dbPath, -1))

		// The events table should now exist
		db, err := sql.Open("sqlite", dbPath)
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		var name string
		row := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", eventsTable)
		require.NoError(t, row.Scan(&name))
		assert.Equal(t, eventsTable, name)

		// Running up again is a no-op
		require.NoError(t, MigrateTelemetry(schema.SQLiteBackend, dbPath, -1))

		// Roll back to version 0
		require.NoError(t, MigrateTelemetry(schema.SQLiteBackend, dbPath, 0))
		row = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", eventsTable)
		assert.Error(t, row.Scan(&name), "events table should be gone after rollback")
	})

	t.Run("none backend rejected", func(t *testing.T) {
		assert.Error(t, MigrateTelemetry(schema.NoneBackend, "", -1))
	})

	t.Run("unsupported backend rejected", func(t *testing.T) {
		assert.Error(t, MigrateTelemetry(schema.DatabaseBackend("bogus"), "", -1))
	})
}
