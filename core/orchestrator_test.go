package core

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nutriscope/nutriscope/internal/apiclient"
	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/internal/iocache"
	"github.com/nutriscope/nutriscope/internal/telemetry"
	"github.com/nutriscope/nutriscope/schema"
)

// Valid wire payloads for the dashboard domain.
var (
	summaryJSON = json.RawMessage(`{
		"health_score": 85,
		"calories_consumed": 1950,
		"calories_burned": 420,
		"hydration_pct": 72.5,
		"sleep_hours": 7.5,
		"macros": {"protein_g": 80, "carbs_g": 240, "fat_g": 60, "fiber_g": 30}
	}`)
	trendJSON = json.RawMessage(`[
		{"date": "2026-08-27", "health_score": 82, "calories": 2000},
		{"date": "2026-08-28", "health_score": 85, "calories": 1950}
	]`)
)

func testConfig() *contract.Config {
	return &contract.Config{
		UserID:               "local",
		RequestTimeout:       5 * time.Second,
		DashboardTTL:         30 * time.Minute,
		ChartsTTL:            15 * time.Minute,
		CareTTL:              10 * time.Minute,
		DashboardFallbackTTL: 5 * time.Minute,
		ChartsFallbackTTL:    30 * time.Minute,
		CareFallbackTTL:      5 * time.Minute,
	}
}

func newTestStore(t *testing.T) contract.CacheStore {
	t.Helper()
	persister, err := iocache.NewCachePersister("nutriscope_cache", schema.NoneBackend, "")
	require.NoError(t, err)
	store := iocache.NewCacheStore(persister)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// countingStore is a TelemetryStore that tallies recorded events by type.
type countingStore struct {
	mu     sync.Mutex
	counts map[schema.EventType]int
}

func newCountingStore() *countingStore {
	return &countingStore{counts: make(map[schema.EventType]int)}
}

func (cs *countingStore) RecordEvent(event schema.TelemetryEvent) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.counts[event.Type]++
	return nil
}

func (cs *countingStore) GetAllEvents() ([]schema.TelemetryEventRecord, error) { return nil, nil }
func (cs *countingStore) GetStatus() (schema.TelemetryStatus, error) {
	return schema.TelemetryStatus{}, nil
}
func (cs *countingStore) Close() error { return nil }

func (cs *countingStore) count(eventType schema.EventType) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.counts[eventType]
}

func healthyDashboardClient() *apiclient.MockAPIClient {
	client := &apiclient.MockAPIClient{}
	client.On("GetDashboardSummary", mock.Anything).Return(summaryJSON, nil)
	client.On("GetDashboardTrend", mock.Anything).Return(trendJSON, nil)
	return client
}

func failingDashboardClient() *apiclient.MockAPIClient {
	client := &apiclient.MockAPIClient{}
	client.On("GetDashboardSummary", mock.Anything).Return(json.RawMessage(nil), errors.New("connection refused"))
	client.On("GetDashboardTrend", mock.Anything).Return(json.RawMessage(nil), errors.New("connection refused"))
	return client
}

func TestFetchDomainNetworkSuccess(t *testing.T) {
	cfg := testConfig()
	store := newTestStore(t)
	events := newCountingStore()
	sink := telemetry.NewSink(events, cfg.UserID, 8)

	client := healthyDashboardClient()
	result, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, client))
	require.NoError(t, err)

	assert.Equal(t, schema.NetworkSource, result.Meta.Source)
	assert.False(t, result.Meta.Stale)
	assert.Empty(t, result.Meta.Warning)
	assert.InDelta(t, 85, result.Data.Summary.HealthScore, 0.001)
	require.Len(t, result.Data.Trend, 2)

	// The successful payload is cached under the normal TTL before the
	// result is published
	entry := store.Get(generateCacheKey(schema.DashboardDomain, cfg.UserID))
	require.NotNil(t, entry)
	assert.Equal(t, cfg.DashboardTTL, entry.TTL)

	sink.Close()
	assert.Zero(t, events.count(schema.APIErrorEvent))
}

func TestFetchDomainCacheHitSkipsNetwork(t *testing.T) {
	cfg := testConfig()
	store := newTestStore(t)
	sink := telemetry.NewSink(nil, cfg.UserID, 8)
	defer sink.Close()

	// Prime the cache with one network fetch
	primer := healthyDashboardClient()
	_, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, primer))
	require.NoError(t, err)

	// A second fetch must be served from cache without touching the client
	untouched := &apiclient.MockAPIClient{}
	result, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, untouched))
	require.NoError(t, err)

	assert.Equal(t, schema.CacheSource, result.Meta.Source)
	assert.InDelta(t, 85, result.Data.Summary.HealthScore, 0.001)
	untouched.AssertNotCalled(t, "GetDashboardSummary", mock.Anything)
	untouched.AssertNotCalled(t, "GetDashboardTrend", mock.Anything)
}

func TestFetchDomainRefreshForcesSingleNetworkAttempt(t *testing.T) {
	cfg := testConfig()
	store := newTestStore(t)
	sink := telemetry.NewSink(nil, cfg.UserID, 8)
	defer sink.Close()

	// Prime the cache
	_, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, healthyDashboardClient()))
	require.NoError(t, err)

	// A refresh bypasses the fresh entry and hits the network exactly once
	// per sub-resource
	refreshCfg := cfg.Clone()
	refreshCfg.Refresh = true
	client := healthyDashboardClient()
	result, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(refreshCfg, client))
	require.NoError(t, err)

	assert.Equal(t, schema.NetworkSource, result.Meta.Source)
	client.AssertNumberOfCalls(t, "GetDashboardSummary", 1)
	client.AssertNumberOfCalls(t, "GetDashboardTrend", 1)
}

func TestFetchDomainStaleFallback(t *testing.T) {
	cfg := testConfig()
	store := newTestStore(t)
	events := newCountingStore()
	sink := telemetry.NewSink(events, cfg.UserID, 8)

	// Store a valid bundle that expires almost immediately
	wire, err := json.Marshal(dashboardWire{Summary: summaryJSON, Trend: trendJSON})
	require.NoError(t, err)
	key := generateCacheKey(schema.DashboardDomain, cfg.UserID)
	store.Set(key, wire, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	result, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, failingDashboardClient()))
	require.NoError(t, err)

	// Stale data is served, flagged, and never presented as fresh
	assert.Equal(t, schema.FallbackSource, result.Meta.Source)
	assert.True(t, result.Meta.Stale)
	assert.NotEmpty(t, result.Meta.Warning)
	assert.InDelta(t, 85, result.Data.Summary.HealthScore, 0.001)

	sink.Close()
	assert.Equal(t, 1, events.count(schema.APIErrorEvent), "network failure should emit exactly one api_error event")
}

func TestFetchDomainSynthesizedDefault(t *testing.T) {
	cfg := testConfig()
	store := newTestStore(t)
	events := newCountingStore()
	sink := telemetry.NewSink(events, cfg.UserID, 8)

	result, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, failingDashboardClient()))
	require.NoError(t, err)

	assert.Equal(t, schema.FallbackSource, result.Meta.Source)
	assert.False(t, result.Meta.Stale)
	assert.NotEmpty(t, result.Meta.Warning)

	// The synthesized bundle satisfies the same schema contract as a real
	// response
	raw, err := json.Marshal(result.Data)
	require.NoError(t, err)
	decoded, err := decodeDashboardBundle(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, decoded.Trend)

	// It is cached under the short fallback TTL so the next fetch retries
	// the network soon
	entry := store.Get(generateCacheKey(schema.DashboardDomain, cfg.UserID))
	require.NotNil(t, entry)
	assert.Equal(t, cfg.DashboardFallbackTTL, entry.TTL)

	sink.Close()
	assert.Equal(t, 1, events.count(schema.APIErrorEvent))
}

func TestFetchDomainUndecodableCacheEntryIsAMiss(t *testing.T) {
	cfg := testConfig()
	store := newTestStore(t)
	sink := telemetry.NewSink(nil, cfg.UserID, 8)
	defer sink.Close()

	// Syntactically valid JSON that fails the domain decoder
	badWire, err := json.Marshal(dashboardWire{
		Summary: json.RawMessage(`{"health_score": 250}`),
		Trend:   trendJSON,
	})
	require.NoError(t, err)
	store.Set(generateCacheKey(schema.DashboardDomain, cfg.UserID), badWire, time.Hour)

	client := healthyDashboardClient()
	result, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, client))
	require.NoError(t, err)

	assert.Equal(t, schema.NetworkSource, result.Meta.Source, "undecodable cache entry should fall through to the network")
}

func TestFetchDomainChartsAllOrNothing(t *testing.T) {
	cfg := testConfig()
	store := newTestStore(t)
	events := newCountingStore()
	sink := telemetry.NewSink(events, cfg.UserID, 8)

	// Two sub-fetches succeed, one fails; the bundle must fail as a whole
	client := &apiclient.MockAPIClient{}
	client.On("GetChartSeries", mock.Anything).Return(json.RawMessage(`[]`), nil)
	client.On("GetMetricSummaries", mock.Anything).Return(json.RawMessage(`[]`), nil)
	client.On("GetCorrelations", mock.Anything).Return(json.RawMessage(nil), errors.New("timeout"))

	result, err := FetchDomain(context.Background(), store, sink, NewChartsPipeline(cfg, client))
	require.NoError(t, err)

	assert.Equal(t, schema.FallbackSource, result.Meta.Source, "partial network success must not be rendered")

	sink.Close()
	assert.Equal(t, 1, events.count(schema.APIErrorEvent))
}

func TestFetchDomainInvalidNetworkPayloadFallsBack(t *testing.T) {
	cfg := testConfig()
	store := newTestStore(t)
	events := newCountingStore()
	sink := telemetry.NewSink(events, cfg.UserID, 8)

	// A payload that parses but violates the schema counts as a failure
	client := &apiclient.MockAPIClient{}
	client.On("GetDashboardSummary", mock.Anything).Return(json.RawMessage(`{"health_score": -5}`), nil)
	client.On("GetDashboardTrend", mock.Anything).Return(trendJSON, nil)

	result, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, client))
	require.NoError(t, err)

	assert.Equal(t, schema.FallbackSource, result.Meta.Source)

	// The rejected payload must not have been cached as a network success
	entry := store.Get(generateCacheKey(schema.DashboardDomain, cfg.UserID))
	require.NotNil(t, entry)
	assert.Equal(t, cfg.DashboardFallbackTTL, entry.TTL, "only the synthesized fallback should be cached")

	sink.Close()
	assert.Equal(t, 1, events.count(schema.APIErrorEvent))
}

func TestFetchDomainNilStore(t *testing.T) {
	cfg := testConfig()
	sink := telemetry.NewSink(nil, cfg.UserID, 8)
	defer sink.Close()

	result, err := FetchDomain(context.Background(), nil, sink, NewDashboardPipeline(cfg, healthyDashboardClient()))
	require.NoError(t, err)
	assert.Equal(t, schema.NetworkSource, result.Meta.Source)
}

func TestFetchDomainDomainKeysAreIndependent(t *testing.T) {
	cfg := testConfig()
	store := newTestStore(t)
	sink := telemetry.NewSink(nil, cfg.UserID, 8)
	defer sink.Close()

	// Populate the dashboard cache, then make the care fetch fail
	_, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, healthyDashboardClient()))
	require.NoError(t, err)

	careClient := &apiclient.MockAPIClient{}
	careClient.On("GetProviders", mock.Anything).Return(json.RawMessage(nil), errors.New("down"))
	careClient.On("GetHealthRecords", mock.Anything).Return(json.RawMessage(nil), errors.New("down"))
	careClient.On("GetAppointments", mock.Anything).Return(json.RawMessage(nil), errors.New("down"))

	careResult, err := FetchDomain(context.Background(), store, sink, NewCarePipeline(cfg, careClient))
	require.NoError(t, err)
	assert.Equal(t, schema.FallbackSource, careResult.Meta.Source)

	// The dashboard entry is untouched by the care failure
	dashResult, err := FetchDomain(context.Background(), store, sink, NewDashboardPipeline(cfg, &apiclient.MockAPIClient{}))
	require.NoError(t, err)
	assert.Equal(t, schema.CacheSource, dashResult.Meta.Source)
}

func TestFetchDomainWaitLoadedCancelled(t *testing.T) {
	cfg := testConfig()
	sink := telemetry.NewSink(nil, cfg.UserID, 8)
	defer sink.Close()

	store := &iocache.MockCacheStore{}
	store.On("WaitLoaded", mock.Anything).Return(context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchDomain(ctx, store, sink, NewDashboardPipeline(cfg, healthyDashboardClient()))
	assert.ErrorIs(t, err, context.Canceled)
}
