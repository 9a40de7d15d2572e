package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nutriscope/nutriscope/internal/apiclient"
	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/internal/iocache"
	"github.com/nutriscope/nutriscope/internal/telemetry"
	"github.com/nutriscope/nutriscope/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// Shared dependencies built by the setup functions.
var (
	storeManager contract.StoreManager
	apiClient    contract.APIClient
	sink         *telemetry.Sink
)

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "nutriscope",
	Short:              "Fetch nutrition and health analytics with offline-first caching.",
	Long:               `Nutriscope fetches premium nutrition analytics and keeps working when the network does not, degrading from cache to stale data to placeholder defaults.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".nutriscope") // Name of config file (without extension)
		viper.SetConfigType("yaml")        // We'll use YAML format
		viper.AddConfigPath(".")           // Look in the current directory
		viper.AddConfigPath("$HOME")       // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("NUTRISCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("base-url", contract.DefaultBaseURL)
	viper.SetDefault("user", contract.DefaultUserID)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("telemetry-backend", "")
	viper.SetDefault("telemetry-db-connect", "")
	viper.SetDefault("color", "yes")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".nutriscope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// sharedSetup unmarshals config, runs validation and builds the shared
// dependencies used by the fetch commands.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Initialize persistence with validated config.
	mgr, err := iocache.NewStoreManager(cfg.CacheBackend, cfg.CacheDBConnect, cfg.TelemetryBackend, cfg.TelemetryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	storeManager = mgr

	// 5. Build the API client and the telemetry sink.
	apiClient = apiclient.NewHTTPClient(cfg.BaseURL, cfg.APIToken)
	sink = telemetry.NewSink(storeManager.GetTelemetryStore(), cfg.UserID, cfg.TelemetryQueueSize)

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// sharedTeardown flushes the telemetry sink and closes the stores.
// Used as PostRun so queued events are not lost on exit.
func sharedTeardown(_ *cobra.Command, _ []string) {
	if sink != nil {
		sink.Close()
	}
	if storeManager != nil {
		storeManager.Close()
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
