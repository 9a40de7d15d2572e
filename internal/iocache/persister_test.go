package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/nutriscope/nutriscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLitePersister(t *testing.T) (string, *SQLCachePersister) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	ps, err := NewCachePersister(cacheTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ps.Close() })
	return dbPath, ps.(*SQLCachePersister)
}

func TestSQLCachePersisterRoundTrip(t *testing.T) {
	_, ps := newSQLitePersister(t)

	entry := schema.CacheEntry{
		Key:      "dashboard",
		Value:    json.RawMessage(`{"health_score":85}`),
		Version:  1,
		StoredAt: time.Now().Truncate(time.Millisecond),
		TTL:      30 * time.Minute,
	}
	require.NoError(t, ps.Write(entry))

	entries, err := ps.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.Key, entries[0].Key)
	assert.JSONEq(t, string(entry.Value), string(entries[0].Value))
	assert.Equal(t, entry.Version, entries[0].Version)
	assert.Equal(t, entry.TTL, entries[0].TTL)
	assert.True(t, entry.StoredAt.Equal(entries[0].StoredAt), "stored_at should survive the millisecond round trip")
}

func TestSQLCachePersisterUpsert(t *testing.T) {
	_, ps := newSQLitePersister(t)

	first := schema.CacheEntry{Key: "charts", Value: json.RawMessage(`[1]`), Version: 1, StoredAt: time.Now(), TTL: time.Minute}
	require.NoError(t, ps.Write(first))

	second := first
	second.Value = json.RawMessage(`[1,2]`)
	require.NoError(t, ps.Write(second))

	entries, err := ps.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1, "second write should replace, not duplicate")
	assert.JSONEq(t, `[1,2]`, string(entries[0].Value))
}

func TestSQLCachePersisterDelete(t *testing.T) {
	_, ps := newSQLitePersister(t)

	entry := schema.CacheEntry{Key: "care", Value: json.RawMessage(`{}`), Version: 1, StoredAt: time.Now(), TTL: time.Minute}
	require.NoError(t, ps.Write(entry))
	require.NoError(t, ps.Delete("care"))

	entries, err := ps.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Deleting a missing key is a no-op
	require.NoError(t, ps.Delete("care"))
}

func TestSQLCachePersisterSkipsCorruptRows(t *testing.T) {
	dbPath, ps := newSQLitePersister(t)

	good := schema.CacheEntry{Key: "good", Value: json.RawMessage(`{"ok":true}`), Version: 1, StoredAt: time.Now(), TTL: time.Minute}
	require.NoError(t, ps.Write(good))

	// Inject rows the application would never write: invalid JSON and a
	// non-positive TTL
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	insert := fmt.Sprintf(`INSERT INTO %q (cache_key, cache_value, cache_version, cache_stored_at, cache_ttl_ms) VALUES (?, ?, ?, ?, ?)`, cacheTable)
	_, err = db.Exec(insert, "bad_json", []byte("{nope"), 1, time.Now().UnixMilli(), int64(60000))
	require.NoError(t, err)
	_, err = db.Exec(insert, "bad_ttl", []byte(`{}`), 1, time.Now().UnixMilli(), int64(0))
	require.NoError(t, err)

	entries, err := ps.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1, "corrupt rows should be skipped, not fail hydration")
	assert.Equal(t, "good", entries[0].Key)
}

func TestSQLCachePersisterStatus(t *testing.T) {
	_, ps := newSQLitePersister(t)

	status, err := ps.Status()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalEntries)

	older := schema.CacheEntry{Key: "a", Value: json.RawMessage(`{}`), Version: 1, StoredAt: time.Now().Add(-time.Hour), TTL: time.Minute}
	newer := schema.CacheEntry{Key: "b", Value: json.RawMessage(`{}`), Version: 1, StoredAt: time.Now(), TTL: time.Minute}
	require.NoError(t, ps.Write(older))
	require.NoError(t, ps.Write(newer))

	status, err = ps.Status()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.True(t, status.LastEntryTime.After(status.OldestEntryTime))
}

func TestNoneBackendPersister(t *testing.T) {
	ps, err := NewCachePersister(cacheTable, schema.NoneBackend, "")
	require.NoError(t, err)

	entries, err := ps.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, ps.Write(schema.CacheEntry{Key: "x", Value: json.RawMessage(`{}`), Version: 1, StoredAt: time.Now(), TTL: time.Minute}))
	require.NoError(t, ps.Delete("x"))

	status, err := ps.Status()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	require.NoError(t, ps.Close())
}

func TestNewCachePersisterUnsupportedBackend(t *testing.T) {
	_, err := NewCachePersister(cacheTable, schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

// TestValidateTableName tests the validateTableName function with various inputs.
func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{
			name:      "valid simple name",
			tableName: "nutriscope_cache",
			wantErr:   false,
		},
		{
			name:      "valid name with numbers",
			tableName: "cache_v2",
			wantErr:   false,
		},
		{
			name:      "valid name with leading underscore",
			tableName: "_cache",
			wantErr:   false,
		},
		{
			name:      "empty name",
			tableName: "",
			wantErr:   true,
		},
		{
			name:      "leading digit",
			tableName: "1cache",
			wantErr:   true,
		},
		{
			name:      "injection attempt",
			tableName: "cache; DROP TABLE users",
			wantErr:   true,
		},
		{
			name:      "quoted injection attempt",
			tableName: `cache" --`,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`events`", quoteTableName("events", schema.MySQLBackend))
	assert.Equal(t, `"events"`, quoteTableName("events", schema.PostgreSQLBackend))
	assert.Equal(t, `"events"`, quoteTableName("events", schema.SQLiteBackend))
}
