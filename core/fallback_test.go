package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nutriscope/nutriscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every synthesizer must produce output that passes the same decoder as a
// real network response.

func TestSynthesizeDashboard(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	bundle := synthesizeDashboard(now)

	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	decoded, err := decodeDashboardBundle(raw)
	require.NoError(t, err, "synthesized dashboard must satisfy the schema contract")

	require.Len(t, decoded.Trend, 7)
	assert.Equal(t, "2026-08-23", decoded.Trend[0].Date)
	assert.Equal(t, "2026-08-29", decoded.Trend[6].Date)

	// Deterministic for a fixed clock
	assert.Equal(t, bundle, synthesizeDashboard(now))
}

func TestSynthesizeCharts(t *testing.T) {
	bundle := synthesizeCharts(time.Now())

	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	decoded, err := decodeChartBundle(raw)
	require.NoError(t, err, "synthesized charts must satisfy the schema contract")

	require.Len(t, decoded.Series, 3)
	assert.Len(t, decoded.Summaries, 3)
	for i, series := range decoded.Series {
		assert.Equal(t, decoded.Summaries[i].Metric, series.Metric)
		assert.Empty(t, series.Points)
	}
	assert.Empty(t, decoded.Correlations)
}

func TestSynthesizeCare(t *testing.T) {
	bundle := synthesizeCare(time.Now())

	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	decoded, err := decodeCareBundle(raw)
	require.NoError(t, err, "synthesized care data must satisfy the schema contract")

	assert.Empty(t, decoded.Providers)
	assert.Empty(t, decoded.Records)
	assert.Empty(t, decoded.Appointments)
}

func TestSynthesizedFieldsWithinBounds(t *testing.T) {
	bundle := synthesizeDashboard(time.Now())
	summary := bundle.Summary

	assert.GreaterOrEqual(t, summary.HealthScore, 0.0)
	assert.LessOrEqual(t, summary.HealthScore, 100.0)
	assert.GreaterOrEqual(t, summary.HydrationPct, 0.0)
	assert.LessOrEqual(t, summary.HydrationPct, 100.0)
	for _, p := range bundle.Trend {
		_, err := time.Parse(schema.DateFormat, p.Date)
		assert.NoError(t, err)
	}
}
