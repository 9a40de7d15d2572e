package schema

import (
	"encoding/json"
	"time"
)

// DateFormat is the wire format for daily data points.
const DateFormat = "2006-01-02"

// NutrientBreakdown holds the daily macro totals in grams.
type NutrientBreakdown struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
}

// DashboardSummary is the canonical shape of the premium dashboard headline data.
type DashboardSummary struct {
	HealthScore      float64           `json:"health_score"` // 0-100
	CaloriesConsumed int               `json:"calories_consumed"`
	CaloriesBurned   int               `json:"calories_burned"`
	HydrationPct     float64           `json:"hydration_pct"`
	SleepHours       float64           `json:"sleep_hours"`
	Macros           NutrientBreakdown `json:"macros"`
}

// TrendPoint is one day of dashboard trend history.
type TrendPoint struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	HealthScore float64 `json:"health_score"`
	Calories    int     `json:"calories"`
}

// DashboardBundle is everything the premium dashboard renders, fetched
// and cached as one unit so the screen is never partially inconsistent.
type DashboardBundle struct {
	Summary DashboardSummary `json:"summary"`
	Trend   []TrendPoint     `json:"trend"`
}

// DecodeDashboardSummary validates and decodes a raw summary payload.
// A wrong shape is a ValidationError, never a silently patched value.
func DecodeDashboardSummary(raw json.RawMessage) (*DashboardSummary, error) {
	var s DashboardSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &ValidationError{Domain: DashboardDomain, Reason: err.Error()}
	}
	if s.HealthScore < 0 || s.HealthScore > 100 {
		return nil, &ValidationError{Domain: DashboardDomain, Field: "health_score", Reason: "must be between 0 and 100"}
	}
	if s.CaloriesConsumed < 0 {
		return nil, &ValidationError{Domain: DashboardDomain, Field: "calories_consumed", Reason: "must not be negative"}
	}
	if s.CaloriesBurned < 0 {
		return nil, &ValidationError{Domain: DashboardDomain, Field: "calories_burned", Reason: "must not be negative"}
	}
	if s.HydrationPct < 0 || s.HydrationPct > 100 {
		return nil, &ValidationError{Domain: DashboardDomain, Field: "hydration_pct", Reason: "must be between 0 and 100"}
	}
	if s.Macros.ProteinG < 0 || s.Macros.CarbsG < 0 || s.Macros.FatG < 0 || s.Macros.FiberG < 0 {
		return nil, &ValidationError{Domain: DashboardDomain, Field: "macros", Reason: "must not contain negative grams"}
	}
	return &s, nil
}

// DecodeDashboardTrend validates and decodes a raw trend payload.
func DecodeDashboardTrend(raw json.RawMessage) ([]TrendPoint, error) {
	var points []TrendPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, &ValidationError{Domain: DashboardDomain, Reason: err.Error()}
	}
	for _, p := range points {
		if _, err := time.Parse(DateFormat, p.Date); err != nil {
			return nil, &ValidationError{Domain: DashboardDomain, Field: "date", Reason: "must be formatted as YYYY-MM-DD"}
		}
		if p.HealthScore < 0 || p.HealthScore > 100 {
			return nil, &ValidationError{Domain: DashboardDomain, Field: "health_score", Reason: "must be between 0 and 100"}
		}
	}
	return points, nil
}
