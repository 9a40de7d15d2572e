// Package core has core logic for fetching, caching and degrading the
// premium analytics domains.
package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/internal/telemetry"
	"github.com/nutriscope/nutriscope/schema"
)

// Fallback warnings attached to degraded results.
const (
	staleWarning       = "Showing previously saved data. Could not reach the nutriscope service."
	synthesizedWarning = "Showing placeholder data. Could not reach the nutriscope service and no saved data was found."
)

// Result carries one decoded domain payload plus where it came from.
type Result[T any] struct {
	Data T
	Meta schema.FetchMeta
}

// Pipeline describes how one analytics domain is fetched and degraded.
// The orchestration in FetchDomain is identical for every domain; only
// these pieces differ.
type Pipeline[T any] struct {
	Domain      schema.Domain
	Key         string
	TTL         time.Duration
	FallbackTTL time.Duration
	Timeout     time.Duration
	Refresh     bool

	// Decode validates a raw payload into the domain shape. A payload that
	// fails Decode never counts as a success, wherever it came from.
	Decode func(raw json.RawMessage) (T, error)

	// FetchNetwork retrieves the raw payload from the API. All sub-fetches
	// for the domain happen inside; partial success is a failure.
	FetchNetwork func(ctx context.Context) (json.RawMessage, error)

	// Synthesize produces a structurally valid default dataset.
	Synthesize func(now time.Time) T
}

// FetchDomain runs the fallback chain for one domain:
// fresh cache, then network, then stale cache, then synthesized defaults.
//
// The only hard failure is a cancelled context while waiting for cache
// hydration; past that point the chain always settles on some renderable
// result. Exactly one api_error event is tracked per failed network
// attempt, and every network success is written to the cache before the
// result is returned.
func FetchDomain[T any](ctx context.Context, store contract.CacheStore, sink *telemetry.Sink, p Pipeline[T]) (*Result[T], error) {
	if store != nil {
		// An empty read before hydration is ambiguous with a real miss,
		// so never race it.
		if err := store.WaitLoaded(ctx); err != nil {
			return nil, err
		}
		if p.Refresh {
			store.Remove(p.Key)
		}
	}

	// 1. Fresh cache. Skipped entirely on manual refresh so the network
	// attempt below is guaranteed to happen.
	if store != nil && !p.Refresh {
		if entry := store.Get(p.Key); entry != nil {
			if data, err := p.Decode(entry.Value); err == nil {
				return &Result[T]{Data: data, Meta: schema.FetchMeta{Source: schema.CacheSource}}, nil
			}
			// Undecodable entry is a miss; drop it so it cannot shadow
			// the stale path with garbage later
			store.Remove(p.Key)
		}
	}

	// 2. Network.
	fetchCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	raw, err := p.FetchNetwork(fetchCtx)
	if err == nil {
		var data T
		data, err = p.Decode(raw)
		if err == nil {
			if store != nil {
				// Write-through before the result is published
				store.Set(p.Key, raw, p.TTL)
			}
			return &Result[T]{Data: data, Meta: schema.FetchMeta{Source: schema.NetworkSource}}, nil
		}
	}

	if sink != nil {
		sink.TrackAPIError(p.Domain, err)
	}

	// 3. Stale cache.
	if store != nil {
		if entry := store.GetStale(p.Key); entry != nil {
			if data, derr := p.Decode(entry.Value); derr == nil {
				return &Result[T]{Data: data, Meta: schema.FetchMeta{
					Source:  schema.FallbackSource,
					Stale:   true,
					Warning: staleWarning,
				}}, nil
			}
		}
	}

	// 4. Synthesized defaults, cached under the short fallback TTL so the
	// next fetch retries the network soon instead of being starved.
	data := p.Synthesize(time.Now())
	if store != nil {
		if synthRaw, merr := json.Marshal(data); merr == nil {
			store.Set(p.Key, synthRaw, p.FallbackTTL)
		}
	}
	return &Result[T]{Data: data, Meta: schema.FetchMeta{
		Source:  schema.FallbackSource,
		Warning: synthesizedWarning,
	}}, nil
}
