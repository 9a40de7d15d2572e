package iocache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nutriscope/nutriscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreManager(t *testing.T) {
	t.Run("sqlite setup", func(t *testing.T) {
		dir := t.TempDir()
		cacheDB := filepath.Join(dir, "cache.db")
		telemetryDB := filepath.Join(dir, "telemetry.db")

		mgr, err := NewStoreManager(schema.SQLiteBackend, cacheDB, schema.SQLiteBackend, telemetryDB)
		require.NoError(t, err)

		cache := mgr.GetCacheStore()
		require.NotNil(t, cache)
		telemetry := mgr.GetTelemetryStore()
		require.NotNil(t, telemetry)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, cache.WaitLoaded(ctx))

		cache.Set("dashboard", json.RawMessage(`{"ok":true}`), time.Minute)
		require.NotNil(t, cache.Get("dashboard"))

		mgr.Close()

		// Verify database files were created
		_, err = os.Stat(cacheDB)
		assert.NoError(t, err, "Cache database file should be created")
		_, err = os.Stat(telemetryDB)
		assert.NoError(t, err, "Telemetry database file should be created")
	})

	t.Run("idempotent close", func(t *testing.T) {
		mgr, err := NewStoreManager(schema.NoneBackend, "", schema.NoneBackend, "")
		require.NoError(t, err)

		mgr.Close()
		mgr.Close()
		mgr.Close()
	})

	t.Run("disabled stores", func(t *testing.T) {
		mgr, err := NewStoreManager("", "", "", "")
		require.NoError(t, err)
		defer mgr.Close()

		assert.Nil(t, mgr.GetCacheStore())
		assert.Nil(t, mgr.GetTelemetryStore())
	})

	t.Run("invalid telemetry backend closes cache", func(t *testing.T) {
		cacheDB := filepath.Join(t.TempDir(), "cache.db")
		_, err := NewStoreManager(schema.SQLiteBackend, cacheDB, schema.DatabaseBackend("bogus"), "")
		assert.Error(t, err)
	})
}

func TestStoreManagerPersistenceAcrossRestart(t *testing.T) {
	cacheDB := filepath.Join(t.TempDir(), "cache.db")

	mgr, err := NewStoreManager(schema.SQLiteBackend, cacheDB, "", "")
	require.NoError(t, err)

	cache := mgr.GetCacheStore()
	cache.Set("dashboard", json.RawMessage(`{"health_score":64}`), time.Hour)
	mgr.Close()

	// A second manager over the same file sees the entry after hydration
	mgr2, err := NewStoreManager(schema.SQLiteBackend, cacheDB, "", "")
	require.NoError(t, err)
	defer mgr2.Close()

	cache2 := mgr2.GetCacheStore()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, cache2.WaitLoaded(ctx))

	entry := cache2.Get("dashboard")
	require.NotNil(t, entry)
	assert.JSONEq(t, `{"health_score":64}`, string(entry.Value))
}
