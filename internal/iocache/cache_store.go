package iocache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/schema"
)

// currentCacheVersion defines the version of the cache payload layout.
// Entries written by an older layout are treated as misses.
const currentCacheVersion = 1

// opQueueSize bounds the write-behind queue between Set/Remove callers
// and the persistence goroutine.
const opQueueSize = 256

// persistOp is one queued write-behind operation. A nil entry is a delete.
type persistOp struct {
	key   string
	entry *schema.CacheEntry
}

// CacheStoreImpl is the persisted TTL cache backing the analytics screens.
//
// The in-memory view is the source of truth once written: Set updates it
// synchronously so a Get in the same tick reflects the write, while the
// durable copy catches up asynchronously. Hydration from the persister runs
// in the background; entries written before hydration completes win over
// the hydrated copy of the same key.
type CacheStoreImpl struct {
	persister contract.CachePersister

	mu         sync.RWMutex
	entries    map[string]schema.CacheEntry
	tombstones map[string]struct{} // keys removed before hydration settled

	loaded chan struct{} // closed once hydration completes

	opMu   sync.Mutex
	closed bool
	ops    chan persistOp
	done   chan struct{} // closed when the persistence goroutine drains

	closeOnce sync.Once
	closeErr  error
}

var _ contract.CacheStore = &CacheStoreImpl{} // Compile-time check

// NewCacheStore creates a cache store on top of the given persister and
// starts its background hydration. The persister must not be nil; use a
// NoneBackend persister to disable durability.
func NewCacheStore(persister contract.CachePersister) *CacheStoreImpl {
	s := &CacheStoreImpl{
		persister:  persister,
		entries:    make(map[string]schema.CacheEntry),
		tombstones: make(map[string]struct{}),
		loaded:     make(chan struct{}),
		ops:        make(chan persistOp, opQueueSize),
		done:       make(chan struct{}),
	}
	go s.hydrate()
	go s.flushLoop()
	return s
}

// hydrate loads all persisted entries into memory exactly once. Any
// persistence failure degrades the store to empty-but-loaded; it is
// never fatal.
func (s *CacheStoreImpl) hydrate() {
	defer close(s.loaded)

	entries, err := s.persister.ReadAll()
	if err != nil {
		contract.LogWarn("Cache hydration failed, starting empty", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if e.Version != currentCacheVersion {
			continue
		}
		if _, removed := s.tombstones[e.Key]; removed {
			continue
		}
		if _, ok := s.entries[e.Key]; ok {
			// A write raced ahead of hydration; the newer value wins.
			continue
		}
		s.entries[e.Key] = e
	}
	s.tombstones = nil
}

// flushLoop drains queued operations to the persister. It waits for
// hydration first so queued writes are never interleaved with the bulk read.
func (s *CacheStoreImpl) flushLoop() {
	defer close(s.done)
	<-s.loaded
	for op := range s.ops {
		var err error
		if op.entry != nil {
			err = s.persister.Write(*op.entry)
		} else {
			err = s.persister.Delete(op.key)
		}
		if err != nil {
			contract.LogWarn("Cache persistence failed", err)
		}
	}
}

// enqueue hands an operation to the persistence goroutine. Operations
// issued after Close are dropped; the entry is already gone from (or in)
// the in-memory view, so nothing observable is lost in-process.
func (s *CacheStoreImpl) enqueue(op persistOp) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	if s.closed {
		return
	}
	s.ops <- op
}

// Get returns the entry for key if it exists and is still fresh.
func (s *CacheStoreImpl) Get(key string) *schema.CacheEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok || !entry.Fresh(time.Now()) {
		return nil
	}
	copied := entry
	return &copied
}

// GetStale returns the entry for key regardless of freshness. Used only
// by the degraded fallback path; never serve its result as a normal hit.
func (s *CacheStoreImpl) GetStale(key string) *schema.CacheEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	copied := entry
	return &copied
}

// Set overwrites any existing entry for key. The in-memory view is updated
// synchronously; the durable write is queued. A non-positive TTL violates
// the entry invariant and is rejected softly.
func (s *CacheStoreImpl) Set(key string, value json.RawMessage, ttl time.Duration) {
	if ttl <= 0 {
		contract.LogWarn("Cache set skipped", errors.New("ttl must be positive for key "+key))
		return
	}

	entry := schema.CacheEntry{
		Key:      key,
		Value:    value,
		Version:  currentCacheVersion,
		StoredAt: time.Now(),
		TTL:      ttl,
	}

	s.mu.Lock()
	s.entries[key] = entry
	if s.tombstones != nil {
		delete(s.tombstones, key)
	}
	s.mu.Unlock()

	s.enqueue(persistOp{key: key, entry: &entry})
}

// Remove deletes the entry for key. Removing a nonexistent key is a no-op.
func (s *CacheStoreImpl) Remove(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	if s.tombstones != nil {
		s.tombstones[key] = struct{}{}
	}
	s.mu.Unlock()

	s.enqueue(persistOp{key: key})
}

// Loaded reports whether the initial hydration has completed.
func (s *CacheStoreImpl) Loaded() bool {
	select {
	case <-s.loaded:
		return true
	default:
		return false
	}
}

// WaitLoaded blocks until hydration completes or ctx is done.
func (s *CacheStoreImpl) WaitLoaded(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetStatus returns status information about the cache store.
func (s *CacheStoreImpl) GetStatus() (schema.CacheStatus, error) {
	status, err := s.persister.Status()
	status.Loaded = s.Loaded()
	return status, err
}

// Close flushes pending persistence writes and closes the store.
func (s *CacheStoreImpl) Close() error {
	s.closeOnce.Do(func() {
		s.opMu.Lock()
		s.closed = true
		close(s.ops)
		s.opMu.Unlock()

		<-s.done
		s.closeErr = s.persister.Close()
	})
	return s.closeErr
}
