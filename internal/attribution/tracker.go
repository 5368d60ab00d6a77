// Package attribution records referral-sourced product visits. The
// tracker is an explicitly constructed component: its lifecycle is owned
// by the hosting process, so tests build isolated instances instead of
// sharing ambient global state.
package attribution

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"comparo/internal/domain"
	"comparo/internal/platform/metrics"
)

// Sink receives recorded events for downstream forwarding. It must never
// block the caller; slow sinks drop rather than stall a redirect.
type Sink interface {
	Enqueue(event domain.AttributionEvent)
}

// Tracker keeps an ordered, append-only, in-process log of attribution
// events. Appends are atomic with respect to each other; snapshot reads
// see events in insertion order.
type Tracker struct {
	mu      sync.Mutex
	events  []domain.AttributionEvent
	sink    Sink
	metrics *metrics.Metrics
	clock   func() time.Time
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithSink attaches a forwarding sink. Optional; the tracker works
// standalone in tests and sink-less deployments.
func WithSink(sink Sink) TrackerOption {
	return func(t *Tracker) { t.sink = sink }
}

// WithMetrics attaches prometheus counters.
func WithMetrics(m *metrics.Metrics) TrackerOption {
	return func(t *Tracker) { t.metrics = m }
}

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) TrackerOption {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Record normalizes, stamps, and appends one event. Events are immutable
// once appended; nothing here merges or deduplicates. The context is
// accepted for interface symmetry with durable stores; the in-process
// append itself cannot block.
func (t *Tracker) Record(_ context.Context, event domain.AttributionEvent) error {
	event.Source = domain.ParseReferralSource(string(event.Source))
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = t.clock()
	}

	t.mu.Lock()
	t.events = append(t.events, event)
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.AttributionEvents.WithLabelValues(string(event.Source)).Inc()
	}
	if t.sink != nil {
		t.sink.Enqueue(event)
	}
	return nil
}

// Snapshot returns a defensive copy of all recorded events in insertion
// order. Mutating the returned slice does not affect tracker state.
func (t *Tracker) Snapshot() []domain.AttributionEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.AttributionEvent, len(t.events))
	copy(out, t.events)
	return out
}

// Reset clears all recorded events. Test/debug use only, never production
// traffic control.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
}
