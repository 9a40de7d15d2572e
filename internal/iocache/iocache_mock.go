package iocache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetCacheStore implements the StoreManager interface.
func (m *MockStoreManager) GetCacheStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetTelemetryStore implements the StoreManager interface.
func (m *MockStoreManager) GetTelemetryStore() contract.TelemetryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.TelemetryStore)
	return store
}

// Close implements the StoreManager interface.
func (m *MockStoreManager) Close() {
	m.Called()
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) *schema.CacheEntry {
	ret := m.Called(key)
	entry, _ := ret.Get(0).(*schema.CacheEntry)
	return entry
}

// GetStale implements the CacheStore interface.
func (m *MockCacheStore) GetStale(key string) *schema.CacheEntry {
	ret := m.Called(key)
	entry, _ := ret.Get(0).(*schema.CacheEntry)
	return entry
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, value json.RawMessage, ttl time.Duration) {
	m.Called(key, value, ttl)
}

// Remove implements the CacheStore interface.
func (m *MockCacheStore) Remove(key string) {
	m.Called(key)
}

// Loaded implements the CacheStore interface.
func (m *MockCacheStore) Loaded() bool {
	args := m.Called()
	return args.Bool(0)
}

// WaitLoaded implements the CacheStore interface.
func (m *MockCacheStore) WaitLoaded(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTelemetryStore is a mock implementation of TelemetryStore for testing.
type MockTelemetryStore struct {
	mock.Mock
}

var _ contract.TelemetryStore = &MockTelemetryStore{} // Compile-time check

// RecordEvent implements the TelemetryStore interface.
func (m *MockTelemetryStore) RecordEvent(event schema.TelemetryEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// GetAllEvents implements the TelemetryStore interface.
func (m *MockTelemetryStore) GetAllEvents() ([]schema.TelemetryEventRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.TelemetryEventRecord)
	return records, args.Error(1)
}

// GetStatus implements the TelemetryStore interface.
func (m *MockTelemetryStore) GetStatus() (schema.TelemetryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.TelemetryStatus), args.Error(1)
}

// Close implements the TelemetryStore interface.
func (m *MockTelemetryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
