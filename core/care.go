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

// careWire is the cached wire shape of the healthcare integration bundle.
type careWire struct {
	Providers    json.RawMessage `json:"providers"`
	Records      json.RawMessage `json:"records"`
	Appointments json.RawMessage `json:"appointments"`
}

// NewCarePipeline builds the fetch pipeline for the healthcare integration screen.
func NewCarePipeline(cfg *contract.Config, client contract.APIClient) Pipeline[*schema.CareBundle] {
	return Pipeline[*schema.CareBundle]{
		Domain:       schema.CareDomain,
		Key:          generateCacheKey(schema.CareDomain, cfg.UserID),
		TTL:          cfg.CareTTL,
		FallbackTTL:  cfg.CareFallbackTTL,
		Timeout:      cfg.RequestTimeout,
		Refresh:      cfg.Refresh,
		Decode:       decodeCareBundle,
		FetchNetwork: fetchCareBundle(client),
		Synthesize:   synthesizeCare,
	}
}

// fetchCareBundle fetches providers, records and appointments concurrently.
// Any sub-fetch failing fails the whole bundle.
func fetchCareBundle(client contract.APIClient) func(ctx context.Context) (json.RawMessage, error) {
	return func(ctx context.Context) (json.RawMessage, error) {
		var wire careWire

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			wire.Providers, err = client.GetProviders(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			wire.Records, err = client.GetHealthRecords(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			wire.Appointments, err = client.GetAppointments(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return json.Marshal(wire)
	}
}

// decodeCareBundle validates a raw bundle payload into the domain shape.
func decodeCareBundle(raw json.RawMessage) (*schema.CareBundle, error) {
	var wire careWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &schema.ValidationError{Domain: schema.CareDomain, Reason: err.Error()}
	}

	providers, err := schema.DecodeProviders(wire.Providers)
	if err != nil {
		return nil, err
	}
	records, err := schema.DecodeHealthRecords(wire.Records)
	if err != nil {
		return nil, err
	}
	appointments, err := schema.DecodeAppointments(wire.Appointments)
	if err != nil {
		return nil, err
	}

	return &schema.CareBundle{Providers: providers, Records: records, Appointments: appointments}, nil
}

// ExecuteCare fetches and renders the healthcare integration screen.
// It serves as the main entry point for the 'care' command.
func ExecuteCare(ctx context.Context, cfg *contract.Config, client contract.APIClient, mgr contract.StoreManager, sink *telemetry.Sink) error {
	start := time.Now()

	result, err := FetchDomain(ctx, mgr.GetCacheStore(), sink, NewCarePipeline(cfg, client))
	if err != nil {
		return err
	}
	sink.TrackPageView(schema.CareDomain, result.Meta.Source)

	duration := time.Since(start)
	return outwriter.PrintCare(result.Data, result.Meta, cfg, duration)
}
