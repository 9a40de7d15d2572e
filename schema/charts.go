package schema

import (
	"encoding/json"
	"math"
	"time"
)

// MetricPoint is one daily sample of a tracked metric.
type MetricPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// ChartSeries is one renderable line of the data visualization screen.
type ChartSeries struct {
	Metric string        `json:"metric"`
	Unit   string        `json:"unit"`
	Points []MetricPoint `json:"points"`
}

// MetricSummary holds the aggregate stats shown next to each chart.
type MetricSummary struct {
	Metric  string  `json:"metric"`
	Unit    string  `json:"unit"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Correlation is a pairwise relationship between two tracked metrics.
type Correlation struct {
	MetricA     string  `json:"metric_a"`
	MetricB     string  `json:"metric_b"`
	Coefficient float64 `json:"coefficient"` // Pearson, -1 to 1
}

// Strength buckets the correlation coefficient for display.
func (c Correlation) Strength() string {
	abs := math.Abs(c.Coefficient)
	switch {
	case abs >= 0.7:
		return "strong"
	case abs >= 0.4:
		return "moderate"
	default:
		return "weak"
	}
}

// ChartBundle is everything the data visualization screen renders.
// All three sub-resources are fetched together; partial success is not
// surfaced as partial data.
type ChartBundle struct {
	Series       []ChartSeries   `json:"series"`
	Summaries    []MetricSummary `json:"summaries"`
	Correlations []Correlation   `json:"correlations"`
}

// DecodeChartSeries validates and decodes a raw chart series payload.
func DecodeChartSeries(raw json.RawMessage) ([]ChartSeries, error) {
	var series []ChartSeries
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, &ValidationError{Domain: ChartsDomain, Reason: err.Error()}
	}
	for _, s := range series {
		if s.Metric == "" {
			return nil, &ValidationError{Domain: ChartsDomain, Field: "metric", Reason: "must not be empty"}
		}
		for _, p := range s.Points {
			if _, err := time.Parse(DateFormat, p.Date); err != nil {
				return nil, &ValidationError{Domain: ChartsDomain, Field: "date", Reason: "must be formatted as YYYY-MM-DD"}
			}
		}
	}
	return series, nil
}

// DecodeMetricSummaries validates and decodes a raw metric summary payload.
func DecodeMetricSummaries(raw json.RawMessage) ([]MetricSummary, error) {
	var summaries []MetricSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		return nil, &ValidationError{Domain: ChartsDomain, Reason: err.Error()}
	}
	for _, s := range summaries {
		if s.Metric == "" {
			return nil, &ValidationError{Domain: ChartsDomain, Field: "metric", Reason: "must not be empty"}
		}
		if s.Min > s.Max {
			return nil, &ValidationError{Domain: ChartsDomain, Field: "min", Reason: "must not exceed max"}
		}
	}
	return summaries, nil
}

// DecodeCorrelations validates and decodes a raw correlation payload.
func DecodeCorrelations(raw json.RawMessage) ([]Correlation, error) {
	var correlations []Correlation
	if err := json.Unmarshal(raw, &correlations); err != nil {
		return nil, &ValidationError{Domain: ChartsDomain, Reason: err.Error()}
	}
	for _, c := range correlations {
		if c.MetricA == "" || c.MetricB == "" {
			return nil, &ValidationError{Domain: ChartsDomain, Field: "metric_a", Reason: "must name both metrics"}
		}
		if c.Coefficient < -1 || c.Coefficient > 1 {
			return nil, &ValidationError{Domain: ChartsDomain, Field: "coefficient", Reason: "must be between -1 and 1"}
		}
	}
	return correlations, nil
}
