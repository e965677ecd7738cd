// Package telemetry exposes runtime metrics through Prometheus. Each
// Metrics value owns its registry so tests and embedded runtimes never
// collide on the global default.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "envision"

// Metrics collects counters the runtime updates as it processes
// messages and renders frames. A nil *Metrics discards everything.
type Metrics struct {
	registry *prometheus.Registry

	messagesProcessed   prometheus.Counter
	framesRendered      prometheus.Counter
	eventsDispatched    prometheus.Counter
	loopGuardTrips      prometheus.Counter
	asyncCommandErrors  prometheus.Counter
	activeSubscriptions prometheus.Gauge
	overlayDepth        prometheus.Gauge
	tickDuration        prometheus.Histogram
}

// NewMetrics creates a metrics set backed by a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		messagesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_processed_total",
			Help:      "Messages run through the update loop.",
		}),
		framesRendered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_rendered_total",
			Help:      "Frames flushed to the backend.",
		}),
		eventsDispatched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dispatched_total",
			Help:      "Terminal events delivered to overlays or the app.",
		}),
		loopGuardTrips: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loop_guard_trips_total",
			Help:      "Ticks that hit the message-processing iteration bound.",
		}),
		asyncCommandErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "async_command_errors_total",
			Help:      "Errors surfaced by fallible async commands.",
		}),
		activeSubscriptions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subscriptions_active",
			Help:      "Subscriptions currently pumping messages.",
		}),
		overlayDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overlay_depth",
			Help:      "Overlays currently on the stack.",
		}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time per runtime tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the backing registry for custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) MessageProcessed() {
	if m != nil {
		m.messagesProcessed.Inc()
	}
}

func (m *Metrics) FrameRendered() {
	if m != nil {
		m.framesRendered.Inc()
	}
}

func (m *Metrics) EventDispatched() {
	if m != nil {
		m.eventsDispatched.Inc()
	}
}

func (m *Metrics) LoopGuardTripped() {
	if m != nil {
		m.loopGuardTrips.Inc()
	}
}

func (m *Metrics) AsyncCommandError() {
	if m != nil {
		m.asyncCommandErrors.Inc()
	}
}

func (m *Metrics) SubscriptionStarted() {
	if m != nil {
		m.activeSubscriptions.Inc()
	}
}

func (m *Metrics) SubscriptionEnded() {
	if m != nil {
		m.activeSubscriptions.Dec()
	}
}

func (m *Metrics) SetOverlayDepth(depth int) {
	if m != nil {
		m.overlayDepth.Set(float64(depth))
	}
}

func (m *Metrics) ObserveTick(d time.Duration) {
	if m != nil {
		m.tickDuration.Observe(d.Seconds())
	}
}
