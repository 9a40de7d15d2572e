// Package telemetry provides the fire-and-forget event sink between the
// fetch pipelines and the durable event store.
package telemetry

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/nutriscope/nutriscope/internal/contract"
	"github.com/nutriscope/nutriscope/schema"
)

// Sink queues telemetry events and records them asynchronously.
//
// Tracking never blocks the caller and never fails loudly: if the queue is
// full or the store rejects an event, the event is dropped. Losing telemetry
// is an accepted cost; slowing down or breaking a user-facing fetch is not.
type Sink struct {
	store  contract.TelemetryStore
	userID string

	mu     sync.Mutex
	closed bool
	events chan schema.TelemetryEvent
	done   chan struct{}

	closeOnce sync.Once
}

// NewSink creates a sink over the given store and starts its worker.
// A nil store turns the sink into a pure drop target, which is still safe
// to track against.
func NewSink(store contract.TelemetryStore, userID string, queueSize int) *Sink {
	if queueSize <= 0 {
		queueSize = contract.DefaultTelemetryQueueSize
	}
	s := &Sink{
		store:  store,
		userID: userID,
		events: make(chan schema.TelemetryEvent, queueSize),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Sink) run() {
	defer close(s.done)
	for event := range s.events {
		if s.store == nil {
			continue
		}
		if err := s.store.RecordEvent(event); err != nil {
			contract.LogWarn("Telemetry record failed", err)
		}
	}
}

// Track queues one event of the given type. Drops silently when the queue
// is full or the sink is closed.
func (s *Sink) Track(eventType schema.EventType, data map[string]any) {
	event := schema.TelemetryEvent{
		ID:        ulid.Make().String(),
		UserID:    s.userID,
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- event:
	default:
		// Queue full, drop
	}
}

// TrackPageView records that a domain screen was rendered and where its
// data came from.
func (s *Sink) TrackPageView(domain schema.Domain, source schema.Source) {
	s.Track(schema.PageViewEvent, map[string]any{
		"domain": string(domain),
		"source": string(source),
	})
}

// TrackAPIError records a failed network fetch for a domain.
func (s *Sink) TrackAPIError(domain schema.Domain, err error) {
	data := map[string]any{"domain": string(domain)}
	if err != nil {
		data["error"] = err.Error()
	}
	s.Track(schema.APIErrorEvent, data)
}

// Close drains queued events into the store and stops the worker.
// Safe to call more than once; tracking after Close is a silent drop.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.events)
		s.mu.Unlock()
		<-s.done
	})
}
