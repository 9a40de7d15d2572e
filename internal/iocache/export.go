package iocache

import (
	"errors"
	"fmt"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/internal/parquet"
)

// ExecuteTelemetryExport performs the actual export of telemetry events to a Parquet file.
func ExecuteTelemetryExport(store contract.TelemetryStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("telemetry store is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get telemetry status: %w", err)
	}

	if status.TotalEvents == 0 {
		return errors.New("no telemetry events found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total events: %d\n", status.TotalEvents)

	// Retrieve all events
	events, err := store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to retrieve telemetry events: %w", err)
	}

	// Convert to Parquet format and write
	parquetEvents := parquet.ConvertTelemetryEventRecords(events)
	eventsFile := outputFile + ".events.parquet"
	if err := parquet.WriteTelemetryEventsParquet(parquetEvents, eventsFile); err != nil {
		return fmt.Errorf("failed to write telemetry events: %w", err)
	}
	fmt.Printf("Exported %d events to: %s\n", len(parquetEvents), eventsFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
