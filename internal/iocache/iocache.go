// Package iocache provides durable storage for the analytics data cache
// and the telemetry event log.
package iocache

import (
	"fmt"
	"sync"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/schema"
)

// StoreManagerImpl owns the cache and telemetry stores for one process.
// Instances are built explicitly with NewStoreManager and passed down;
// there is no package-level singleton, so tests can construct independent
// managers with fakes or temp databases.
type StoreManagerImpl struct {
	mu        sync.RWMutex
	cache     contract.CacheStore
	telemetry contract.TelemetryStore
	closeOnce sync.Once
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// NewStoreManager initializes the cache and telemetry stores for the given
// backends. An empty backend disables that store; callers get nil from the
// corresponding getter and must handle it.
func NewStoreManager(cacheBackend schema.DatabaseBackend, cacheConnStr string, telemetryBackend schema.DatabaseBackend, telemetryConnStr string) (*StoreManagerImpl, error) {
	mgr := &StoreManagerImpl{}

	if cacheBackend != "" {
		persister, err := NewCachePersister(cacheTable, cacheBackend, cacheConnStr)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache storage: %w", err)
		}
		mgr.cache = NewCacheStore(persister)
	}

	if telemetryBackend != "" {
		telemetryStore, err := NewTelemetryStore(telemetryBackend, telemetryConnStr)
		if err != nil {
			if mgr.cache != nil {
				_ = mgr.cache.Close()
			}
			return nil, fmt.Errorf("failed to initialize telemetry store: %w", err)
		}
		mgr.telemetry = telemetryStore
	}

	return mgr, nil
}

// GetCacheStore returns the analytics cache store, or nil if disabled.
func (mgr *StoreManagerImpl) GetCacheStore() contract.CacheStore {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return mgr.cache
}

// GetTelemetryStore returns the telemetry store, or nil if disabled.
func (mgr *StoreManagerImpl) GetTelemetryStore() contract.TelemetryStore {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return mgr.telemetry
}

// Close shuts down both stores. Safe to call more than once.
func (mgr *StoreManagerImpl) Close() {
	mgr.closeOnce.Do(func() {
		mgr.mu.Lock()
		defer mgr.mu.Unlock()
		if mgr.cache != nil {
			_ = mgr.cache.Close()
		}
		if mgr.telemetry != nil {
			_ = mgr.telemetry.Close()
		}
	})
}
