package iocache

import (
	"fmt"

	"github.com/nutriscope/nutriscope/schema"
)

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Hydrated: %t\n", status.Loaded)
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintTelemetryStatus prints telemetry status information.
func PrintTelemetryStatus(status schema.TelemetryStatus) {
	fmt.Printf("Telemetry Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Events: %d\n", status.TotalEvents)
	if status.TotalEvents > 0 {
		fmt.Printf("Last Event: %s\n", status.LastEventTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Event: %s\n", status.OldestEventTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("Events By Type:")
	for eventType, count := range status.EventsByType {
		fmt.Printf("  %s: %d\n", eventType, count)
	}
}
