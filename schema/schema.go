// Package schema has configs, models and global variables for all parts of nutriscope.
package schema

import (
	"encoding/json"
	"time"
)

// CacheEntry represents a single persisted cache record.
// Entries are immutable once written; a new write with the same key
// fully replaces the prior entry.
type CacheEntry struct {
	Key      string          // Cache key, unique per data domain and user
	Value    json.RawMessage // Opaque JSON payload as returned by the decoder
	Version  int             // Cache schema version used to invalidate stale layouts
	StoredAt time.Time       // Time the entry was written
	TTL      time.Duration   // Time-to-live; must be positive
}

// Fresh reports whether the entry may still be served as a normal-path result.
// The boundary is exclusive: an entry aged exactly TTL is already expired.
func (e *CacheEntry) Fresh(now time.Time) bool {
	return now.Sub(e.StoredAt) < e.TTL
}

// TelemetryEvent is a single fire-and-forget telemetry record.
// Dropped events under failure are an accepted loss, not an error condition.
type TelemetryEvent struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// FetchMeta describes where a fetch result came from.
// Source is diagnostic only and not part of the rendering contract,
// but it must be derivable for testing.
type FetchMeta struct {
	Source  Source `json:"source"`
	Stale   bool   `json:"stale"`
	Warning string `json:"warning,omitempty"`
}
