//go:build integration

// Package integration contains integration tests for nutriscope.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDashboardServer serves valid dashboard payloads on the real API routes.
func newDashboardServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/dashboard/summary", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"health_score": 85,
			"calories_consumed": 1950,
			"calories_burned": 420,
			"hydration_pct": 72.5,
			"sleep_hours": 7.5,
			"macros": {"protein_g": 80, "carbs_g": 240, "fat_g": 60, "fiber_g": 30}
		}`))
	})
	mux.HandleFunc("/v1/dashboard/trend", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"date": "2026-08-27", "health_score": 82, "calories": 2000},
			{"date": "2026-08-28", "health_score": 85, "calories": 1950}
		]`))
	})
	return httptest.NewServer(mux)
}

// fetchEnvelope runs `nutriscope dashboard --output json` and decodes the envelope.
func fetchEnvelope(t *testing.T, env []string, args ...string) map[string]any {
	t.Helper()
	fullArgs := append([]string{"dashboard", "--output", "json"}, args...)
	out, err := runNutriscopeCommand(t, env, fullArgs...)
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &envelope), "output should be a JSON envelope: %s", out)
	return envelope
}

// TestDashboardFallbackFlow walks the degradation chain through the CLI:
// network fetch, cache hit, then synthesized defaults once the service is
// gone and the cache entry was invalidated by a forced refresh.
func TestDashboardFallbackFlow(t *testing.T) {
	server := newDashboardServer()

	// Keep SQLite files inside the shared temp dir
	env := []string{
		"HOME=" + tempDir,
		"NUTRISCOPE_BASE_URL=" + server.URL,
		"NUTRISCOPE_CACHE_BACKEND=sqlite",
		"NUTRISCOPE_TIMEOUT=2s",
	}

	// Start from a clean cache
	_, err := runNutriscopeCommand(t, env, "cache", "clear")
	require.NoError(t, err)

	// 1. First fetch comes from the network and is cached
	envelope := fetchEnvelope(t, env)
	assert.Equal(t, "network", envelope["source"])
	assert.Equal(t, false, envelope["stale"])

	// 2. Second fetch is served from the fresh cache
	envelope = fetchEnvelope(t, env)
	assert.Equal(t, "cache", envelope["source"])

	// 3. Service gone and cache invalidated by the refresh: placeholder
	// defaults are synthesized
	server.Close()
	envelope = fetchEnvelope(t, env, "--refresh")
	assert.Equal(t, "fallback", envelope["source"])
	assert.Equal(t, false, envelope["stale"])
	assert.NotEmpty(t, envelope["warning"])

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	summary, ok := data["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 50.0, summary["health_score"])

	// 4. The synthesized dataset was cached, so the next run serves it
	// from the cache without another network attempt
	envelope = fetchEnvelope(t, env)
	assert.Equal(t, "cache", envelope["source"])
}
