// Package parquet provides data structures and functions for exporting
// telemetry events to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/nutriscope/nutriscope/schema"
	"github.com/parquet-go/parquet-go"
)

// TelemetryEvent represents a single recorded telemetry event.
// This struct maps to the nutriscope_events database table.
type TelemetryEvent struct {
	// EventID is the ULID assigned when the event was tracked
	EventID string `parquet:"event_id,snappy"`

	// UserID identifies the account the event belongs to
	UserID string `parquet:"user_id,snappy"`

	// EventType is the event category, e.g. page_view or api_error
	EventType string `parquet:"event_type,snappy"`

	// EventData contains the JSON-encoded event payload (nullable)
	EventData *string `parquet:"event_data,optional,snappy"`

	// EventTime is when the event was recorded (stored as TIMESTAMP with nanosecond precision)
	EventTime time.Time `parquet:"event_time,snappy"`
}

// WriteTelemetryEventsParquet writes a slice of TelemetryEvent structs to a Parquet file.
func WriteTelemetryEventsParquet(data []TelemetryEvent, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the TelemetryEvent struct tags
	writer := parquet.NewGenericWriter[TelemetryEvent](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertTelemetryEventRecords converts schema.TelemetryEventRecord to TelemetryEvent for Parquet export.
func ConvertTelemetryEventRecords(records []schema.TelemetryEventRecord) []TelemetryEvent {
	result := make([]TelemetryEvent, len(records))
	for i, record := range records {
		var data *string
		if record.EventData != "" {
			d := record.EventData
			data = &d
		}
		result[i] = TelemetryEvent{
			EventID:   record.EventID,
			UserID:    record.UserID,
			EventType: record.EventType,
			EventData: data,
			EventTime: record.EventTime,
		}
	}
	return result
}
