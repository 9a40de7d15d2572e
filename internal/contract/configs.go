package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nutriscope/nutriscope/schema"
)

// Default values for configuration.
const (
	DefaultBaseURL        = "https://api.nutriscope.app"
	DefaultUserID         = "local"
	DefaultRequestTimeout = 10 * time.Second
	DefaultPrecision      = 1

	// Per-domain cache policies. Fallback TTLs apply to synthesized
	// datasets cached after a failed fetch, so a subsequent manual
	// refresh is not starved.
	DefaultDashboardTTL       = 30 * time.Minute
	DefaultChartsTTL          = 15 * time.Minute
	DefaultCareTTL            = 10 * time.Minute
	DefaultFallbackTTL        = 5 * time.Minute
	DefaultChartsFallbackTTL  = 30 * time.Minute
	DefaultTelemetryQueueSize = 64
	MinTTL                    = time.Minute
	MaxTTL                    = 24 * time.Hour
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the client.
// This struct remains the "final, validated" config.
type Config struct {
	BaseURL        string
	APIToken       string // Please use env var as this is plaintext
	UserID         string
	RequestTimeout time.Duration

	DashboardTTL time.Duration
	ChartsTTL    time.Duration
	CareTTL      time.Duration

	DashboardFallbackTTL time.Duration
	ChartsFallbackTTL    time.Duration
	CareFallbackTTL      time.Duration

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	TelemetryBackend   schema.DatabaseBackend
	TelemetryDBConnect string // Please use env var as this is plaintext

	TelemetryQueueSize int

	Refresh bool // Invalidate the domain cache key before fetching
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	BaseURL            string `mapstructure:"base-url"`
	APIToken           string `mapstructure:"token"`
	UserID             string `mapstructure:"user"`
	Timeout            string `mapstructure:"timeout"`
	DashboardTTL       string `mapstructure:"dashboard-ttl"`
	ChartsTTL          string `mapstructure:"charts-ttl"`
	CareTTL            string `mapstructure:"care-ttl"`
	FallbackTTL        string `mapstructure:"fallback-ttl"`
	Output             string `mapstructure:"output"`
	OutputFile         string `mapstructure:"output-file"`
	Precision          int    `mapstructure:"precision"`
	Width              int    `mapstructure:"width"`
	Color              string `mapstructure:"color"`
	CacheBackend       string `mapstructure:"cache-backend"`
	CacheDBConnect     string `mapstructure:"cache-db-connect"`
	TelemetryBackend   string `mapstructure:"telemetry-backend"`
	TelemetryDBConnect string `mapstructure:"telemetry-db-connect"`
	TelemetryQueue     int    `mapstructure:"telemetry-queue"`
	Refresh            bool   `mapstructure:"refresh"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Base URL Validation ---
	base := strings.TrimSpace(input.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("invalid base URL %q", input.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base URL scheme must be http or https (received %q)", parsed.Scheme)
	}
	cfg.BaseURL = strings.TrimRight(base, "/")
	cfg.APIToken = input.APIToken

	// --- 2. User Validation ---
	cfg.UserID = strings.TrimSpace(input.UserID)
	if cfg.UserID == "" {
		cfg.UserID = DefaultUserID
	}

	// --- 3. Timeout Parsing ---
	cfg.RequestTimeout = DefaultRequestTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive (received %s)", d)
		}
		cfg.RequestTimeout = d
	}

	// --- 4. TTL Parsing ---
	cfg.DashboardTTL = DefaultDashboardTTL
	cfg.ChartsTTL = DefaultChartsTTL
	cfg.CareTTL = DefaultCareTTL
	cfg.DashboardFallbackTTL = DefaultFallbackTTL
	cfg.ChartsFallbackTTL = DefaultChartsFallbackTTL
	cfg.CareFallbackTTL = DefaultFallbackTTL

	ttlOverrides := []struct {
		raw    string
		target *time.Duration
		name   string
	}{
		{input.DashboardTTL, &cfg.DashboardTTL, "dashboard-ttl"},
		{input.ChartsTTL, &cfg.ChartsTTL, "charts-ttl"},
		{input.CareTTL, &cfg.CareTTL, "care-ttl"},
	}
	for _, o := range ttlOverrides {
		if o.raw == "" {
			continue
		}
		d, err := time.ParseDuration(o.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", o.name, o.raw, err)
		}
		if d < MinTTL || d > MaxTTL {
			return fmt.Errorf("%s must be between %s and %s (received %s)", o.name, MinTTL, MaxTTL, d)
		}
		*o.target = d
	}
	if input.FallbackTTL != "" {
		d, err := time.ParseDuration(input.FallbackTTL)
		if err != nil {
			return fmt.Errorf("invalid fallback-ttl %q: %w", input.FallbackTTL, err)
		}
		if d < MinTTL || d > MaxTTL {
			return fmt.Errorf("fallback-ttl must be between %s and %s (received %s)", MinTTL, MaxTTL, d)
		}
		cfg.DashboardFallbackTTL = d
		cfg.ChartsFallbackTTL = d
		cfg.CareFallbackTTL = d
	}

	// --- 5. Output and Precision Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width must not be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width
	cfg.UseColors = ParseBoolString(input.Color, true)

	// --- 6. Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, or none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if (cfg.CacheBackend == schema.MySQLBackend || cfg.CacheBackend == schema.PostgreSQLBackend) && cfg.CacheDBConnect == "" {
		return fmt.Errorf("cache-db-connect is required for %s cache backend", cfg.CacheBackend)
	}

	cfg.TelemetryBackend = schema.DatabaseBackend(strings.ToLower(input.TelemetryBackend))
	if cfg.TelemetryBackend == "" {
		cfg.TelemetryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidBackends[cfg.TelemetryBackend]; !ok {
		return fmt.Errorf("invalid telemetry backend '%s'. must be sqlite, mysql, postgresql, or none", input.TelemetryBackend)
	}
	cfg.TelemetryDBConnect = input.TelemetryDBConnect
	if (cfg.TelemetryBackend == schema.MySQLBackend || cfg.TelemetryBackend == schema.PostgreSQLBackend) && cfg.TelemetryDBConnect == "" {
		return fmt.Errorf("telemetry-db-connect is required for %s telemetry backend", cfg.TelemetryBackend)
	}

	cfg.TelemetryQueueSize = input.TelemetryQueue
	if cfg.TelemetryQueueSize <= 0 {
		cfg.TelemetryQueueSize = DefaultTelemetryQueueSize
	}

	cfg.Refresh = input.Refresh

	return nil
}

// TTLForDomain returns the configured normal-path TTL for a data domain.
func (c *Config) TTLForDomain(domain schema.Domain) time.Duration {
	switch domain {
	case schema.ChartsDomain:
		return c.ChartsTTL
	case schema.CareDomain:
		return c.CareTTL
	default:
		return c.DashboardTTL
	}
}

// FallbackTTLForDomain returns the configured fallback TTL for a data domain.
func (c *Config) FallbackTTLForDomain(domain schema.Domain) time.Duration {
	switch domain {
	case schema.ChartsDomain:
		return c.ChartsFallbackTTL
	case schema.CareDomain:
		return c.CareFallbackTTL
	default:
		return c.DashboardFallbackTTL
	}
}

// Clone returns a deep copy of the config for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ValidateDatabaseConnectionString checks a backend and its connection
// string without running the rest of config validation. Server backends
// always need a connection string; file backends never do.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	if _, ok := schema.ValidBackends[backend]; !ok {
		return fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, or none", backend)
	}
	if (backend == schema.MySQLBackend || backend == schema.PostgreSQLBackend) && connStr == "" {
		return fmt.Errorf("connection string is required for %s backend", backend)
	}
	return nil
}

// ParseBoolString interprets user-facing yes/no style flags.
func ParseBoolString(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
