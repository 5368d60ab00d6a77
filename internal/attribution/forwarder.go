package attribution

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"comparo/internal/domain"
	"comparo/internal/platform/metrics"
)

// Publisher is the transport the forwarder publishes through. The Kafka
// producer satisfies it in production.
type Publisher interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

// Forwarder drains recorded events to durable analytics storage. It is
// strictly best-effort: a full buffer drops the event with a log line, and
// publish failures never reach the visitor's redirect.
type Forwarder struct {
	publisher Publisher
	topic     string
	inbox     chan domain.AttributionEvent
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

const defaultForwarderBuffer = 256

func NewForwarder(publisher Publisher, topic string, logger *slog.Logger, m *metrics.Metrics) *Forwarder {
	return &Forwarder{
		publisher: publisher,
		topic:     topic,
		inbox:     make(chan domain.AttributionEvent, defaultForwarderBuffer),
		logger:    logger,
		metrics:   m,
	}
}

// Enqueue hands an event to the forwarding worker without blocking.
func (f *Forwarder) Enqueue(event domain.AttributionEvent) {
	select {
	case f.inbox <- event:
	default:
		if f.metrics != nil {
			f.metrics.AttributionDropped.Inc()
		}
		f.logger.Warn("attribution forward buffer full, dropping event",
			"event_id", event.ID,
			"product_slug", event.ProductSlug,
		)
	}
}

// wireEvent is the JSON shape published to the sink topic.
type wireEvent struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductSlug    string    `json:"product_slug"`
	Source         string    `json:"source"`
	AffiliateURL   string    `json:"affiliate_url,omitempty"`
	MarketplaceURL string    `json:"marketplace_url,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	DeviceDisplay  string    `json:"device_display,omitempty"`
	Referrer       string    `json:"referrer,omitempty"`
	ClientIP       string    `json:"client_ip,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Run consumes the inbox until the context is cancelled. Publish failures
// are counted and logged, never returned to the producer side.
func (f *Forwarder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-f.inbox:
			f.publish(ctx, event)
		}
	}
}

func (f *Forwarder) publish(ctx context.Context, event domain.AttributionEvent) {
	value, err := json.Marshal(wireEvent{
		ID:             event.ID,
		ProductID:      event.ProductID,
		ProductSlug:    event.ProductSlug,
		Source:         string(event.Source),
		AffiliateURL:   event.AffiliateURL,
		MarketplaceURL: event.MarketplaceURL,
		UserAgent:      event.UserAgent,
		DeviceDisplay:  event.DeviceDisplay,
		Referrer:       event.Referrer,
		ClientIP:       event.ClientIP,
		Timestamp:      event.Timestamp,
	})
	if err != nil {
		f.logger.Error("encode attribution event", "error", err, "event_id", event.ID)
		return
	}

	if err := f.publisher.Produce(ctx, f.topic, []byte(event.ProductSlug), value); err != nil {
		if f.metrics != nil {
			f.metrics.ForwardFailures.Inc()
		}
		f.logger.Error("publish attribution event",
			"error", err,
			"event_id", event.ID,
			"topic", f.topic,
		)
	}
}
