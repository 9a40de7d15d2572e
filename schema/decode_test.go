package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDashboardSummary(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		raw := json.RawMessage(`{
			"health_score": 72.5,
			"calories_consumed": 1850,
			"calories_burned": 420,
			"hydration_pct": 64,
			"sleep_hours": 7.2,
			"macros": {"protein_g": 92, "carbs_g": 210, "fat_g": 61, "fiber_g": 28}
		}`)
		summary, err := DecodeDashboardSummary(raw)
		require.NoError(t, err)
		assert.InDelta(t, 72.5, summary.HealthScore, 0.001)
		assert.Equal(t, 1850, summary.CaloriesConsumed)
		assert.InDelta(t, 92.0, summary.Macros.ProteinG, 0.001)
	})

	t.Run("score out of range", func(t *testing.T) {
		_, err := DecodeDashboardSummary(json.RawMessage(`{"health_score": 130}`))
		assert.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("negative calories", func(t *testing.T) {
		_, err := DecodeDashboardSummary(json.RawMessage(`{"health_score": 50, "calories_consumed": -1}`))
		assert.True(t, IsValidationError(err))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := DecodeDashboardSummary(json.RawMessage(`{"health_score":`))
		assert.True(t, IsValidationError(err))
	})
}

func TestDecodeDashboardTrend(t *testing.T) {
	t.Run("valid points", func(t *testing.T) {
		points, err := DecodeDashboardTrend(json.RawMessage(`[
			{"date": "2026-03-10", "health_score": 68, "calories": 1900},
			{"date": "2026-03-11", "health_score": 71, "calories": 2050}
		]`))
		require.NoError(t, err)
		assert.Len(t, points, 2)
	})

	t.Run("bad date format", func(t *testing.T) {
		_, err := DecodeDashboardTrend(json.RawMessage(`[{"date": "03/10/2026", "health_score": 68}]`))
		assert.True(t, IsValidationError(err))
	})
}

func TestDecodeChartSeries(t *testing.T) {
	t.Run("valid series", func(t *testing.T) {
		series, err := DecodeChartSeries(json.RawMessage(`[
			{"metric": "weight", "unit": "kg", "points": [{"date": "2026-03-01", "value": 74.2}]}
		]`))
		require.NoError(t, err)
		assert.Equal(t, "weight", series[0].Metric)
	})

	t.Run("empty metric name", func(t *testing.T) {
		_, err := DecodeChartSeries(json.RawMessage(`[{"metric": "", "unit": "kg"}]`))
		assert.True(t, IsValidationError(err))
	})
}

func TestDecodeMetricSummaries(t *testing.T) {
	t.Run("min above max", func(t *testing.T) {
		_, err := DecodeMetricSummaries(json.RawMessage(`[{"metric": "steps", "min": 10, "max": 5}]`))
		assert.True(t, IsValidationError(err))
	})
}

func TestDecodeCorrelations(t *testing.T) {
	t.Run("valid correlation", func(t *testing.T) {
		correlations, err := DecodeCorrelations(json.RawMessage(`[
			{"metric_a": "sleep", "metric_b": "health_score", "coefficient": 0.63}
		]`))
		require.NoError(t, err)
		assert.Equal(t, "moderate", correlations[0].Strength())
	})

	t.Run("coefficient out of range", func(t *testing.T) {
		_, err := DecodeCorrelations(json.RawMessage(`[{"metric_a": "a", "metric_b": "b", "coefficient": 1.2}]`))
		assert.True(t, IsValidationError(err))
	})
}

func TestDecodeCareBundleParts(t *testing.T) {
	t.Run("provider missing name", func(t *testing.T) {
		_, err := DecodeProviders(json.RawMessage(`[{"id": "prov-1", "name": ""}]`))
		assert.True(t, IsValidationError(err))
	})

	t.Run("valid records", func(t *testing.T) {
		records, err := DecodeHealthRecords(json.RawMessage(`[
			{"id": "rec-1", "type": "glucose", "value": 96, "unit": "mg/dL",
			 "recorded_at": "2026-03-12T08:30:00Z", "source": "lab"}
		]`))
		require.NoError(t, err)
		assert.Equal(t, "glucose", records[0].Type)
	})

	t.Run("record missing timestamp", func(t *testing.T) {
		_, err := DecodeHealthRecords(json.RawMessage(`[{"id": "rec-1", "type": "glucose"}]`))
		assert.True(t, IsValidationError(err))
	})

	t.Run("appointment missing provider", func(t *testing.T) {
		_, err := DecodeAppointments(json.RawMessage(`[{"id": "apt-1", "provider_id": ""}]`))
		assert.True(t, IsValidationError(err))
	})
}
