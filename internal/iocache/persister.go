// Package iocache is for caching I/O calls and storing telemetry durably.
package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/schema"
)

// cacheTable is the name of the table for analytics caching.
const cacheTable = "nutriscope_cache"

// tableNamePattern restricts table names to safe identifiers.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLCachePersister handles durable cache storage using various database backends.
type SQLCachePersister struct {
	db         *sql.DB
	tableName  string
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.CachePersister = &SQLCachePersister{} // Compile-time check

// NewCachePersister initializes and returns a new CachePersister based on the backend type.
func NewCachePersister(tableName string, backend schema.DatabaseBackend, connStr string) (contract.CachePersister, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetCacheDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite cache at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL cache: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL cache: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op persister for disabled caching
		return &SQLCachePersister{
			db:         nil,
			tableName:  tableName,
			backend:    backend,
			driverName: "",
			connStr:    connStr,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection (skip for NoneBackend)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	query := getCreateCacheTableQuery(tableName, backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &SQLCachePersister{
		db:         db,
		tableName:  tableName,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// getCreateCacheTableQuery returns the CREATE TABLE query for the given backend.
func getCreateCacheTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key VARCHAR(255) PRIMARY KEY,
				cache_value BLOB NOT NULL,
				cache_version INT NOT NULL,
				cache_stored_at BIGINT NOT NULL,
				cache_ttl_ms BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BYTEA NOT NULL,
				cache_version INTEGER NOT NULL,
				cache_stored_at BIGINT NOT NULL,
				cache_ttl_ms BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BLOB NOT NULL,
				cache_version INTEGER NOT NULL,
				cache_stored_at INTEGER NOT NULL,
				cache_ttl_ms INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// ReadAll returns every persisted entry. Malformed rows are skipped rather
// than failing the whole hydration: a corrupt entry is just a cache miss.
func (ps *SQLCachePersister) ReadAll() ([]schema.CacheEntry, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(ps.tableName, ps.backend)
	query := fmt.Sprintf(`SELECT cache_key, cache_value, cache_version, cache_stored_at, cache_ttl_ms FROM %s`, quotedTableName)
	rows, err := ps.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []schema.CacheEntry
	for rows.Next() {
		var key string
		var value []byte
		var version int
		var storedAtMs, ttlMs int64
		if err := rows.Scan(&key, &value, &version, &storedAtMs, &ttlMs); err != nil {
			continue // corrupt row, treat as miss
		}
		if ttlMs <= 0 || !json.Valid(value) {
			continue
		}
		entries = append(entries, schema.CacheEntry{
			Key:      key,
			Value:    json.RawMessage(value),
			Version:  version,
			StoredAt: time.UnixMilli(storedAtMs),
			TTL:      time.Duration(ttlMs) * time.Millisecond,
		})
	}
	if err := rows.Err(); err != nil {
		return entries, fmt.Errorf("failed while scanning cache entries: %w", err)
	}
	return entries, nil
}

// Write inserts or replaces a persisted entry.
func (ps *SQLCachePersister) Write(entry schema.CacheEntry) error {
	// Skip for NoneBackend
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}

	// Use backend-specific UPSERT
	query := ps.getUpsertQuery()
	_, err := ps.db.Exec(query, entry.Key, []byte(entry.Value), entry.Version, entry.StoredAt.UnixMilli(), entry.TTL.Milliseconds())
	return err
}

// Delete removes a persisted entry. Deleting a missing key is a no-op.
func (ps *SQLCachePersister) Delete(key string) error {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(ps.tableName, ps.backend)
	placeholder := ps.getPlaceholder()
	query := fmt.Sprintf(`DELETE FROM %s WHERE cache_key = %s`, quotedTableName, placeholder)
	_, err := ps.db.Exec(query, key)
	return err
}

// getPlaceholder returns the parameter placeholder for the backend.
func (ps *SQLCachePersister) getPlaceholder() string {
	switch ps.backend {
	case schema.PostgreSQLBackend:
		return "$1"
	default: // SQLite and MySQL
		return "?"
	}
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ps *SQLCachePersister) getUpsertQuery() string {
	quotedTableName := quoteTableName(ps.tableName, ps.backend)
	switch ps.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_version, cache_stored_at, cache_ttl_ms) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE cache_value = new.cache_value, cache_version = new.cache_version, cache_stored_at = new.cache_stored_at, cache_ttl_ms = new.cache_ttl_ms`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_version, cache_stored_at, cache_ttl_ms) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = EXCLUDED.cache_value, cache_version = EXCLUDED.cache_version, cache_stored_at = EXCLUDED.cache_stored_at, cache_ttl_ms = EXCLUDED.cache_ttl_ms`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, cache_value, cache_version, cache_stored_at, cache_ttl_ms) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (ps *SQLCachePersister) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

// Status returns status information about the backing storage.
func (ps *SQLCachePersister) Status() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(ps.backend),
		Connected: ps.db != nil,
	}

	if ps.backend == schema.NoneBackend || ps.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(ps.tableName, ps.backend)

	// Get total entries
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	row := ps.db.QueryRow(countQuery)
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	if status.TotalEntries == 0 {
		return status, nil
	}

	// Get last entry time
	lastQuery := fmt.Sprintf("SELECT MAX(cache_stored_at) FROM %s", quotedTableName)
	row = ps.db.QueryRow(lastQuery)
	var lastMs int64
	if err := row.Scan(&lastMs); err != nil {
		return status, fmt.Errorf("failed to get last entry time: %w", err)
	}
	status.LastEntryTime = time.UnixMilli(lastMs)

	// Get oldest entry time
	oldestQuery := fmt.Sprintf("SELECT MIN(cache_stored_at) FROM %s", quotedTableName)
	row = ps.db.QueryRow(oldestQuery)
	var oldestMs int64
	if err := row.Scan(&oldestMs); err != nil {
		return status, fmt.Errorf("failed to get oldest entry time: %w", err)
	}
	status.OldestEntryTime = time.UnixMilli(oldestMs)

	// Estimate table size (approximate)
	// For SQLite, use page_count * page_size
	// For others, use database-specific size queries with rough fallbacks
	switch ps.backend {
	case schema.SQLiteBackend:
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		row = ps.db.QueryRow(sizeQuery)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			// If pragma fails, skip size
			status.TableSizeBytes = 0
		}
	case schema.MySQLBackend:
		// Fallback rough estimate if information_schema query fails
		status.TableSizeBytes = int64(status.TotalEntries) * 1000

		cfg, err := mysql.ParseDSN(ps.connStr)
		if err != nil {
			break
		}
		dbName := cfg.DBName
		if dbName == "" {
			break
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		row := ps.db.QueryRow(sizeQuery, dbName, ps.tableName)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalEntries) * 1000
		}
	case schema.PostgreSQLBackend:
		sizeQuery := "SELECT pg_total_relation_size($1)"
		row = ps.db.QueryRow(sizeQuery, ps.tableName)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalEntries) * 1000 // Fallback rough estimate
		}
	default:
		status.TableSizeBytes = int64(status.TotalEntries) * 1000 // Rough estimate
	}

	return status, nil
}

// validateTableName rejects identifiers that could be used for SQL injection.
func validateTableName(tableName string) error {
	if !tableNamePattern.MatchString(tableName) {
		return fmt.Errorf("invalid table name: %q", tableName)
	}
	return nil
}

// quoteTableName quotes a table identifier for the given backend.
func quoteTableName(tableName string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "`" + tableName + "`"
	default: // SQLite and PostgreSQL
		return `"` + tableName + `"`
	}
}
