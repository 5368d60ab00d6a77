package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	GateDecisions       *prometheus.CounterVec
	AttributionEvents   *prometheus.CounterVec
	AttributionDropped  prometheus.Counter
	ForwardFailures     prometheus.Counter
	RedirectResolutions *prometheus.CounterVec
	ResolveDuration     prometheus.Histogram
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers metrics on the given registerer. Tests pass a fresh
// registry so suites do not collide on duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "comparo_gate_decisions_total",
			Help: "Access gate decisions by path class and outcome",
		}, []string{"class", "decision"}),
		AttributionEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "comparo_attribution_events_total",
			Help: "Attribution events recorded by referral source",
		}, []string{"source"}),
		AttributionDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "comparo_attribution_dropped_total",
			Help: "Attribution events dropped because the forward buffer was full",
		}),
		ForwardFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "comparo_attribution_forward_failures_total",
			Help: "Attribution events that failed to publish to the sink",
		}),
		RedirectResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "comparo_redirect_resolutions_total",
			Help: "Redirect resolver outcomes",
		}, []string{"outcome"}),
		ResolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "comparo_redirect_resolve_duration_ms",
			Help:    "Latency of redirect resolution in milliseconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		}),
	}
}
