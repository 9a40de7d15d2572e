package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{95, ExcellentValue},
		{80, ExcellentValue},
		{79.9, GoodValue},
		{60, GoodValue},
		{45, FairValue},
		{40, FairValue},
		{39.9, PoorValue},
		{0, PoorValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetPlainLabel(tt.score), "score %v", tt.score)
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "exact", TruncateString("exact", 5))
	assert.Equal(t, "lo...", TruncateString("longer than five", 5))
	assert.Equal(t, "...", TruncateString("abcd", 1))
}

func TestDBFilePaths(t *testing.T) {
	assert.Contains(t, GetCacheDBFilePath(), ".nutriscope_cache.db")
	assert.Contains(t, GetTelemetryDBFilePath(), ".nutriscope_telemetry.db")
}
