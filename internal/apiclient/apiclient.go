// Package apiclient implements the HTTP boundary for premium analytics data.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/nutriscope/nutriscope/internal/contract"
)

// API routes for each analytics payload.
const (
	dashboardSummaryPath = "/v1/dashboard/summary"
	dashboardTrendPath   = "/v1/dashboard/trend"
	chartSeriesPath      = "/v1/charts/series"
	metricSummariesPath  = "/v1/charts/summaries"
	correlationsPath     = "/v1/charts/correlations"
	providersPath        = "/v1/care/providers"
	healthRecordsPath    = "/v1/care/records"
	appointmentsPath     = "/v1/care/appointments"
)

// maxResponseBytes caps a single response read. Analytics payloads are
// small; anything larger signals a broken server.
const maxResponseBytes = 8 << 20

// HTTPClient implements the APIClient interface over the nutriscope REST API.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

var _ contract.APIClient = &HTTPClient{} // Compile-time check

// NewHTTPClient builds a client for the given base URL and bearer token.
// Timeouts are driven by the caller's context, not the http.Client.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{},
	}
}

// get performs a GET against path and returns the raw JSON body.
// Any non-200 response or non-JSON body is an error; the orchestration
// layer decides what failure means.
func (c *HTTPClient) get(ctx context.Context, path string) (json.RawMessage, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON response from %s", path)
	}

	return json.RawMessage(body), nil
}

// GetDashboardSummary returns the raw headline summary payload.
func (c *HTTPClient) GetDashboardSummary(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, dashboardSummaryPath)
}

// GetDashboardTrend returns the raw daily trend payload.
func (c *HTTPClient) GetDashboardTrend(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, dashboardTrendPath)
}

// GetChartSeries returns the raw chart series payload.
func (c *HTTPClient) GetChartSeries(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, chartSeriesPath)
}

// GetMetricSummaries returns the raw per-metric aggregate payload.
func (c *HTTPClient) GetMetricSummaries(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, metricSummariesPath)
}

// GetCorrelations returns the raw metric correlation payload.
func (c *HTTPClient) GetCorrelations(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, correlationsPath)
}

// GetProviders returns the raw connected-provider payload.
func (c *HTTPClient) GetProviders(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, providersPath)
}

// GetHealthRecords returns the raw synced health record payload.
func (c *HTTPClient) GetHealthRecords(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, healthRecordsPath)
}

// GetAppointments returns the raw upcoming appointment payload.
func (c *HTTPClient) GetAppointments(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, appointmentsPath)
}
