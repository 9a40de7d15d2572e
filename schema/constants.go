package schema

// Custom string types for type safety.
type (
	// Domain represents one logical unit of premium analytics data.
	Domain string

	// Source represents where a fetch result was served from.
	Source string

	// EventType represents the kind of a telemetry event.
	EventType string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All data domains supported.
const (
	DashboardDomain Domain = "premium_dashboard"
	ChartsDomain    Domain = "data_visualization"
	CareDomain      Domain = "healthcare"
)

// All result sources supported.
const (
	CacheSource    Source = "cache"
	NetworkSource  Source = "network"
	FallbackSource Source = "fallback"
)

// All telemetry event types supported.
const (
	PageViewEvent EventType = "page_view"
	APIErrorEvent EventType = "api_error"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllDomains returns a list of all supported data domains.
var AllDomains = []Domain{DashboardDomain, ChartsDomain, CareDomain}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidBackends lists all valid database backends.
var ValidBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
