// Package cmd defines the command-line interface for nutriscope.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(careCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(telemetryCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	// Add the telemetry subcommands to the parent telemetry command
	telemetryCmd.AddCommand(telemetryStatusCmd)
	telemetryCmd.AddCommand(telemetryClearCmd)
	telemetryCmd.AddCommand(telemetryExportCmd)
	telemetryCmd.AddCommand(telemetryMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("base-url", contract.DefaultBaseURL, "Base URL of the nutriscope API")
	rootCmd.PersistentFlags().String("token", "", "API bearer token (prefer NUTRISCOPE_TOKEN env var)")
	rootCmd.PersistentFlags().StringP("user", "u", contract.DefaultUserID, "User ID to fetch data for")
	rootCmd.PersistentFlags().String("timeout", "", "Network request timeout (e.g. 5s, 30s)")
	rootCmd.PersistentFlags().String("dashboard-ttl", "", "Cache TTL for the premium dashboard (e.g. 30m)")
	rootCmd.PersistentFlags().String("charts-ttl", "", "Cache TTL for data visualization (e.g. 15m)")
	rootCmd.PersistentFlags().String("care-ttl", "", "Cache TTL for healthcare data (e.g. 10m)")
	rootCmd.PersistentFlags().String("fallback-ttl", "", "Cache TTL for synthesized placeholder data (e.g. 5m)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("telemetry-backend", "", "Telemetry backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("telemetry-db-connect", "", "Database connection string for telemetry (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().Int("telemetry-queue", contract.DefaultTelemetryQueueSize, "Telemetry event queue size before events are dropped")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolP("refresh", "r", false, "Invalidate the cache entry and fetch from the network")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of telemetryMigrateCmd to Viper
	telemetryMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(telemetryMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding telemetry migrate flags", err)
	}
}
