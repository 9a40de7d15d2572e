package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Health score label constants.
const (
	ExcellentValue = "Excellent" // Excellent value
	GoodValue      = "Good"      // Good value
	FairValue      = "Fair"      // Fair value
	PoorValue      = "Poor"      // Poor value
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // excellentColor signals on-target health.
	GoodColor      = color.New(color.FgCyan)              // goodColor signals positive but improvable.
	FairColor      = color.New(color.FgYellow)            // fairColor signals standard caution, not bold.
	PoorColor      = color.New(color.FgRed, color.Bold)   // poorColor signals a score needing attention.
)

// GetPlainLabel returns a plain text label for a health score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return ExcellentValue
	case score >= 60:
		return GoodValue
	case score >= 40:
		return FairValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateString shortens s to at most maxLen runes, appending "..." when
// truncation happens.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 3 {
		maxLen = 3
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".nutriscope_cache.db"
	}
	return filepath.Join(homeDir, ".nutriscope_cache.db")
}

// GetTelemetryDBFilePath returns the path to the SQLite DB file for telemetry storage.
func GetTelemetryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".nutriscope_telemetry.db"
	}
	return filepath.Join(homeDir, ".nutriscope_telemetry.db")
}
