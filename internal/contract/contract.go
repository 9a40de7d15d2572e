// Package contract provides interfaces and shared utilities for the nutriscope CLI's internal architecture.
package contract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nutriscope/nutriscope/schema"
)

// APIClient defines the network boundary for premium analytics data.
// Each call is opaque to the orchestration layer: it may reject, may be
// slow, and a successful resolution carries a JSON-shaped payload that
// still has to pass the domain decoder before it counts as a success.
type APIClient interface {
	// --- Premium dashboard ---

	// GetDashboardSummary returns the raw headline summary payload.
	GetDashboardSummary(ctx context.Context) (json.RawMessage, error)

	// GetDashboardTrend returns the raw daily trend payload.
	GetDashboardTrend(ctx context.Context) (json.RawMessage, error)

	// --- Data visualization ---

	// GetChartSeries returns the raw chart series payload.
	GetChartSeries(ctx context.Context) (json.RawMessage, error)

	// GetMetricSummaries returns the raw per-metric aggregate payload.
	GetMetricSummaries(ctx context.Context) (json.RawMessage, error)

	// GetCorrelations returns the raw metric correlation payload.
	GetCorrelations(ctx context.Context) (json.RawMessage, error)

	// --- Healthcare integration ---

	// GetProviders returns the raw connected-provider payload.
	GetProviders(ctx context.Context) (json.RawMessage, error)

	// GetHealthRecords returns the raw synced health record payload.
	GetHealthRecords(ctx context.Context) (json.RawMessage, error)

	// GetAppointments returns the raw upcoming appointment payload.
	GetAppointments(ctx context.Context) (json.RawMessage, error)
}

// CacheStore defines the interface for the persisted TTL cache.
// This allows mocking the store for testing.
type CacheStore interface {
	// Get returns the entry for key if it exists and is still fresh.
	// Misses, expired entries and malformed entries all return nil;
	// Get never fails loudly.
	Get(key string) *schema.CacheEntry

	// GetStale returns the entry for key regardless of freshness.
	// Used only by the degraded fallback path.
	GetStale(key string) *schema.CacheEntry

	// Set overwrites any existing entry for key. The in-memory view is
	// updated synchronously (read-your-writes); persistence is async.
	Set(key string, value json.RawMessage, ttl time.Duration)

	// Remove deletes the entry for key. Removing a nonexistent key is a no-op.
	Remove(key string)

	// Loaded reports whether the initial hydration from persistent storage
	// has completed. An empty Get before then is ambiguous with a real miss.
	Loaded() bool

	// WaitLoaded blocks until hydration completes or ctx is done.
	WaitLoaded(ctx context.Context) error

	// GetStatus returns status information about the cache store.
	GetStatus() (schema.CacheStatus, error)

	// Close flushes pending persistence writes and closes the store.
	Close() error
}

// CachePersister is the injected async key/value persistence primitive
// underneath CacheStore. Failure of any operation must be treated as
// "no data", never propagated as a crash.
type CachePersister interface {
	// ReadAll returns every persisted entry; used once at hydration.
	ReadAll() ([]schema.CacheEntry, error)

	// Write inserts or replaces a persisted entry.
	Write(entry schema.CacheEntry) error

	// Delete removes a persisted entry; deleting a missing key is a no-op.
	Delete(key string) error

	// Status returns status information about the backing storage.
	Status() (schema.CacheStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// TelemetryStore defines the interface for durable telemetry event storage.
type TelemetryStore interface {
	// RecordEvent stores a single telemetry event.
	RecordEvent(event schema.TelemetryEvent) error

	// GetAllEvents returns every stored event, oldest first.
	GetAllEvents() ([]schema.TelemetryEventRecord, error)

	// GetStatus returns status information about the telemetry store.
	GetStatus() (schema.TelemetryStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for managing the process-wide stores.
// Instances are constructed explicitly and injected, never reached through
// a package-level global, so tests can substitute fakes.
type StoreManager interface {
	GetCacheStore() CacheStore
	GetTelemetryStore() TelemetryStore
	Close()
}
