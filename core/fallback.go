package core

import (
	"time"

	"github.com/nutriscope/nutriscope/schema"
)

// The synthesizers below produce the default datasets rendered when both
// the cache and the network come up empty. Each output must satisfy the
// same schema contract as a real response, so rendering code never has a
// special case for placeholder data. Content is deterministic.

// synthesizeDashboard returns a neutral dashboard with a week of flat trend.
func synthesizeDashboard(now time.Time) *schema.DashboardBundle {
	const days = 7
	trend := make([]schema.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		trend = append(trend, schema.TrendPoint{
			Date:        now.AddDate(0, 0, -i).Format(schema.DateFormat),
			HealthScore: 50,
			Calories:    2000,
		})
	}
	return &schema.DashboardBundle{
		Summary: schema.DashboardSummary{
			HealthScore:      50,
			CaloriesConsumed: 2000,
			CaloriesBurned:   400,
			HydrationPct:     50,
			SleepHours:       7,
			Macros: schema.NutrientBreakdown{
				ProteinG: 75,
				CarbsG:   250,
				FatG:     65,
				FiberG:   28,
			},
		},
		Trend: trend,
	}
}

// synthesizeCharts returns empty-but-summarized series for the core metrics.
func synthesizeCharts(now time.Time) *schema.ChartBundle {
	metrics := []struct {
		name string
		unit string
	}{
		{"calories", "kcal"},
		{"weight", "kg"},
		{"sleep", "h"},
	}

	series := make([]schema.ChartSeries, 0, len(metrics))
	summaries := make([]schema.MetricSummary, 0, len(metrics))
	for _, m := range metrics {
		series = append(series, schema.ChartSeries{
			Metric: m.name,
			Unit:   m.unit,
			Points: []schema.MetricPoint{},
		})
		summaries = append(summaries, schema.MetricSummary{
			Metric: m.name,
			Unit:   m.unit,
		})
	}

	return &schema.ChartBundle{
		Series:       series,
		Summaries:    summaries,
		Correlations: []schema.Correlation{},
	}
}

// synthesizeCare returns an empty care screen: no providers connected,
// no records, no appointments.
func synthesizeCare(now time.Time) *schema.CareBundle {
	return &schema.CareBundle{
		Providers:    []schema.Provider{},
		Records:      []schema.HealthRecord{},
		Appointments: []schema.Appointment{},
	}
}
