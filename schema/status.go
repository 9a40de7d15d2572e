package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	Loaded          bool      `json:"loaded"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// TelemetryStatus represents the status of the telemetry store.
type TelemetryStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalEvents     int              `json:"total_events"`
	LastEventTime   time.Time        `json:"last_event_time"`
	OldestEventTime time.Time        `json:"oldest_event_time"`
	EventsByType    map[string]int64 `json:"events_by_type"`
}

// TelemetryEventRecord represents a row from the nutriscope_events table.
type TelemetryEventRecord struct {
	EventID   string
	UserID    string
	EventType string
	EventData string // JSON-encoded event payload
	EventTime time.Time
}
