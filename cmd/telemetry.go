package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/internal/iocache"
	"github.com/nutriscope/nutriscope/schema"
)

// telemetrySetup loads minimal configuration needed for telemetry operations.
// This is used by commands that need telemetry access without full shared setup.
func telemetrySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get telemetry-related config values
	backendStr := viper.GetString("telemetry-backend")
	connStr := viper.GetString("telemetry-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no cache for telemetry commands)
	mgr, err := iocache.NewStoreManager(schema.NoneBackend, "", backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	storeManager = mgr

	cfg.TelemetryBackend = backend
	cfg.TelemetryDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// telemetrySetupWrapper wraps telemetrySetup to provide PreRunE for telemetry commands.
func telemetrySetupWrapper(_ *cobra.Command, _ []string) error {
	return telemetrySetup()
}

// telemetryMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func telemetryMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get telemetry-related config values
	backendStr := viper.GetString("telemetry-backend")
	connStr := viper.GetString("telemetry-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetTelemetryDBFilePath()
	}

	cfg.TelemetryBackend = backend
	cfg.TelemetryDBConnect = connStr

	return nil
}

// telemetryMigrateSetupWrapper wraps telemetryMigrateSetup to provide PreRunE for migrate command.
func telemetryMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return telemetryMigrateSetup()
}

// telemetryCmd focused on telemetry data management.
//
// Note: Telemetry subcommands use minimal initialization (telemetrySetup)
// instead of the full sharedSetup used by fetch commands. This avoids API
// client setup for local data operations.
var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage recorded usage telemetry and exports",
	Long: `Manage the locally recorded usage telemetry.

When enabled, nutriscope records a small event for every screen view and
every failed API fetch:
- page_view events with the screen and the data source that served it
- api_error events with the failing domain and error detail

Recording never blocks or fails a fetch; when telemetry is unavailable
events are silently dropped.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show telemetry statistics
  clear   - Remove all recorded events
  export  - Export events to Parquet for analytics
  migrate - Run schema migrations on the telemetry database

Examples:
  # Record telemetry to SQLite and inspect it
  NUTRISCOPE_TELEMETRY_BACKEND=sqlite nutriscope dashboard
  NUTRISCOPE_TELEMETRY_BACKEND=sqlite nutriscope telemetry status`,
}

// telemetryStatusCmd shows telemetry status.
var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display telemetry statistics and connection details",
	Long: `Show detailed information about recorded telemetry.

Displays:
- Backend type and connection status
- Total number of recorded events
- Last and oldest event timestamps
- Event counts broken down by type

Examples:
  # Check telemetry status
  NUTRISCOPE_TELEMETRY_BACKEND=sqlite nutriscope telemetry status`,
	PreRunE: telemetrySetupWrapper,
	PostRun: sharedTeardown,
	Run: func(_ *cobra.Command, _ []string) {
		store := storeManager.GetTelemetryStore()
		if store == nil {
			contract.LogFatal("Telemetry is not configured", fmt.Errorf("set --telemetry-backend to enable it"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get telemetry status", err)
		}
		iocache.PrintTelemetryStatus(status)
	},
}

// telemetryClearCmd clears recorded telemetry.
var telemetryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded telemetry events",
	Long: `Delete all recorded telemetry events from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the events table

Examples:
  # Clear SQLite telemetry
  NUTRISCOPE_TELEMETRY_BACKEND=sqlite nutriscope telemetry clear`,
	PreRunE: telemetrySetupWrapper,
	PostRun: sharedTeardown,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearTelemetry(cfg.TelemetryBackend, contract.GetTelemetryDBFilePath(), cfg.TelemetryDBConnect); err != nil {
			contract.LogFatal("Failed to clear telemetry", err)
		}
		fmt.Println("Telemetry cleared successfully.")
	},
}

// telemetryExportCmd exports telemetry events to Parquet.
var telemetryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded events to a Parquet file",
	Long: `Export all recorded telemetry events to a Parquet file.

The output path is taken from --output-file; the export writes
<output-file>.events.parquet next to it.

Examples:
  # Export SQLite telemetry for analysis
  NUTRISCOPE_TELEMETRY_BACKEND=sqlite nutriscope telemetry export --output-file usage`,
	PreRunE: telemetrySetupWrapper,
	PostRun: sharedTeardown,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteTelemetryExport(storeManager.GetTelemetryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export telemetry", err)
		}
	},
}

// telemetryMigrateCmd runs schema migrations for the telemetry database.
var telemetryMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations on the telemetry database",
	Long: `Apply or roll back schema migrations on the telemetry database.

Use --target-version to control the migration target:
  -1  migrate to the latest version (default)
   0  roll back all migrations
   N  migrate to version N

Examples:
  # Migrate to the latest schema
  NUTRISCOPE_TELEMETRY_BACKEND=sqlite nutriscope telemetry migrate

  # Roll everything back
  NUTRISCOPE_TELEMETRY_BACKEND=sqlite nutriscope telemetry migrate --target-version 0`,
	PreRunE: telemetryMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateTelemetry(cfg.TelemetryBackend, cfg.TelemetryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run telemetry migrations", err)
		}
	},
}
