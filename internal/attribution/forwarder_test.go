package attribution

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comparo/internal/domain"
)

type fakePublisher struct {
	mu       sync.Mutex
	messages []fakeMessage
	err      error
	notify   chan struct{}
}

type fakeMessage struct {
	topic string
	key   []byte
	value []byte
}

func (p *fakePublisher) Produce(_ context.Context, topic string, key, value []byte) error {
	p.mu.Lock()
	p.messages = append(p.messages, fakeMessage{topic: topic, key: key, value: value})
	p.mu.Unlock()
	if p.notify != nil {
		p.notify <- struct{}{}
	}
	return p.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestForwarderPublishesEnqueuedEvents(t *testing.T) {
	publisher := &fakePublisher{notify: make(chan struct{}, 1)}
	forwarder := NewForwarder(publisher, "attribution.events", discardLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = forwarder.Run(ctx) }()

	forwarder.Enqueue(domain.AttributionEvent{
		ID:          "evt-1",
		ProductSlug: "fridge-5star",
		Source:      domain.SourceFacebook,
		Timestamp:   time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	})

	select {
	case <-publisher.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("event was never published")
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	require.Len(t, publisher.messages, 1)
	msg := publisher.messages[0]
	assert.Equal(t, "attribution.events", msg.topic)
	assert.Equal(t, "fridge-5star", string(msg.key), "keyed by slug so a product's clicks stay in one partition")

	var wire map[string]any
	require.NoError(t, json.Unmarshal(msg.value, &wire))
	assert.Equal(t, "evt-1", wire["id"])
	assert.Equal(t, "facebook", wire["source"])
}

func TestForwarderDropsWhenBufferFull(t *testing.T) {
	// No Run loop draining the inbox, so the buffer fills and overflow
	// events are dropped instead of blocking the caller.
	forwarder := NewForwarder(&fakePublisher{}, "attribution.events", discardLogger(), nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < defaultForwarderBuffer+10; i++ {
			forwarder.Enqueue(domain.AttributionEvent{ID: "evt"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full buffer")
	}
}

func TestForwarderSwallowsPublishFailures(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down"), notify: make(chan struct{}, 2)}
	forwarder := NewForwarder(publisher, "attribution.events", discardLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = forwarder.Run(ctx) }()

	forwarder.Enqueue(domain.AttributionEvent{ID: "evt-1"})
	forwarder.Enqueue(domain.AttributionEvent{ID: "evt-2"})

	// Both attempts happen; the first failure does not stop the loop.
	for range 2 {
		select {
		case <-publisher.notify:
		case <-time.After(2 * time.Second):
			t.Fatal("forwarder stopped after a publish failure")
		}
	}
}

func TestForwarderRunStopsOnContextCancel(t *testing.T) {
	forwarder := NewForwarder(&fakePublisher{}, "attribution.events", discardLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- forwarder.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
