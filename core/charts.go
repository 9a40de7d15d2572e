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

// chartsWire is the cached wire shape of the data visualization bundle.
type chartsWire struct {
	Series       json.RawMessage `json:"series"`
	Summaries    json.RawMessage `json:"summaries"`
	Correlations json.RawMessage `json:"correlations"`
}

// NewChartsPipeline builds the fetch pipeline for the data visualization screen.
func NewChartsPipeline(cfg *contract.Config, client contract.APIClient) Pipeline[*schema.ChartBundle] {
	return Pipeline[*schema.ChartBundle]{
		Domain:       schema.ChartsDomain,
		Key:          generateCacheKey(schema.ChartsDomain, cfg.UserID),
		TTL:          cfg.ChartsTTL,
		FallbackTTL:  cfg.ChartsFallbackTTL,
		Timeout:      cfg.RequestTimeout,
		Refresh:      cfg.Refresh,
		Decode:       decodeChartBundle,
		FetchNetwork: fetchChartBundle(client),
		Synthesize:   synthesizeCharts,
	}
}

// fetchChartBundle fetches the series, summaries and correlations
// concurrently. Any sub-fetch failing fails the whole bundle.
func fetchChartBundle(client contract.APIClient) func(ctx context.Context) (json.RawMessage, error) {
	return func(ctx context.Context) (json.RawMessage, error) {
		var wire chartsWire

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			wire.Series, err = client.GetChartSeries(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			wire.Summaries, err = client.GetMetricSummaries(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			wire.Correlations, err = client.GetCorrelations(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return json.Marshal(wire)
	}
}

// decodeChartBundle validates a raw bundle payload into the domain shape.
func decodeChartBundle(raw json.RawMessage) (*schema.ChartBundle, error) {
	var wire chartsWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &schema.ValidationError{Domain: schema.ChartsDomain, Reason: err.Error()}
	}

	series, err := schema.DecodeChartSeries(wire.Series)
	if err != nil {
		return nil, err
	}
	summaries, err := schema.DecodeMetricSummaries(wire.Summaries)
	if err != nil {
		return nil, err
	}
	correlations, err := schema.DecodeCorrelations(wire.Correlations)
	if err != nil {
		return nil, err
	}

	return &schema.ChartBundle{Series: series, Summaries: summaries, Correlations: correlations}, nil
}

// ExecuteCharts fetches and renders the data visualization screen.
// It serves as the main entry point for the 'charts' command.
func ExecuteCharts(ctx context.Context, cfg *contract.Config, client contract.APIClient, mgr contract.StoreManager, sink *telemetry.Sink) error {
	start := time.Now()

	result, err := FetchDomain(ctx, mgr.GetCacheStore(), sink, NewChartsPipeline(cfg, client))
	if err != nil {
		return err
	}
	sink.TrackPageView(schema.ChartsDomain, result.Meta.Source)

	duration := time.Since(start)
	return outwriter.PrintCharts(result.Data, result.Meta, cfg, duration)
}
