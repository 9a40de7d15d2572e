package core

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/internal/outwriter"
	"github.com/nutriscope/nutriscope/internal/telemetry"
	"github.com/nutriscope/nutriscope/schema"
)

// dashboardWire is the cached wire shape of the dashboard bundle. The raw
// sub-payloads are kept as received so the decoder validates cached data
// exactly like network data.
type dashboardWire struct {
	Summary json.RawMessage `json:"summary"`
	Trend   json.RawMessage `json:"trend"`
}

// NewDashboardPipeline builds the fetch pipeline for the premium dashboard.
func NewDashboardPipeline(cfg *contract.Config, client contract.APIClient) Pipeline[*schema.DashboardBundle] {
	return Pipeline[*schema.DashboardBundle]{
		Domain:       schema.DashboardDomain,
		Key:          generateCacheKey(schema.DashboardDomain, cfg.UserID),
		TTL:          cfg.DashboardTTL,
		FallbackTTL:  cfg.DashboardFallbackTTL,
		Timeout:      cfg.RequestTimeout,
		Refresh:      cfg.Refresh,
		Decode:       decodeDashboardBundle,
		FetchNetwork: fetchDashboardBundle(client),
		Synthesize:   synthesizeDashboard,
	}
}

// fetchDashboardBundle fetches the summary and trend concurrently.
// Either sub-fetch failing fails the whole bundle; a half-filled dashboard
// is never rendered.
func fetchDashboardBundle(client contract.APIClient) func(ctx context.Context) (json.RawMessage, error) {
	return func(ctx context.Context) (json.RawMessage, error) {
		var wire dashboardWire

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			wire.Summary, err = client.GetDashboardSummary(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			wire.Trend, err = client.GetDashboardTrend(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return json.Marshal(wire)
	}
}

// decodeDashboardBundle validates a raw bundle payload into the domain shape.
func decodeDashboardBundle(raw json.RawMessage) (*schema.DashboardBundle, error) {
	var wire dashboardWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &schema.ValidationError{Domain: schema.DashboardDomain, Reason: err.Error()}
	}

	summary, err := schema.DecodeDashboardSummary(wire.Summary)
	if err != nil {
		return nil, err
	}
	trend, err := schema.DecodeDashboardTrend(wire.Trend)
	if err != nil {
		return nil, err
	}

	return &schema.DashboardBundle{Summary: *summary, Trend: trend}, nil
}

// ExecuteDashboard fetches and renders the premium dashboard.
// It serves as the main entry point for the 'dashboard' command.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, client contract.APIClient, mgr contract.StoreManager, sink *telemetry.Sink) error {
	start := time.Now()

	result, err := FetchDomain(ctx, mgr.GetCacheStore(), sink, NewDashboardPipeline(cfg, client))
	if err != nil {
		return err
	}
	sink.TrackPageView(schema.DashboardDomain, result.Meta.Source)

	duration := time.Since(start)
	return outwriter.PrintDashboard(result.Data, result.Meta, cfg, duration)
}
