package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/internal/iocache"
	"github.com/nutriscope/nutriscope/schema"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the cache with the loaded config (no telemetry for cache commands)
	mgr, err := iocache.NewStoreManager(backend, connStr, "", "")
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	storeManager = mgr

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by fetch commands. This avoids API client and
// telemetry setup for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local data cache (keeps screens working offline)",
	Long: `Manage the local cache that keeps nutriscope screens working offline.

Every successful fetch is saved here, so later runs render instantly and
keep working when the nutriscope service is unreachable.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  nutriscope cache status

  # Clear cache after switching accounts
  nutriscope cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached domain data",
	Long: `Delete all cached domain data from the configured backend.

Use this when:
- Switching to a different user account
- Cached data may be stale or corrupted
- Testing fallback behavior without cached data

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  nutriscope cache clear

  # Clear MySQL cache (set connection string via env variable)
  NUTRISCOPE_CACHE_BACKEND=mysql NUTRISCOPE_CACHE_DB_CONNECT="..." nutriscope cache clear`,
	PreRunE: cacheSetupWrapper,
	PostRun: sharedTeardown,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the local data cache.

Displays:
- Backend type and connection status
- Whether the in-memory cache finished hydrating
- Total number of cached entries
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  nutriscope cache status`,
	PreRunE: cacheSetupWrapper,
	PostRun: sharedTeardown,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetCacheStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
