// Package observability exposes the service's Prometheus metrics.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters and histograms recorded by the match server.
// All metrics use the "beadloom_" prefix.
type Metrics struct {
	registry *prometheus.Registry

	// MovesTotal counts accepted and rejected moves by type.
	MovesTotal *prometheus.CounterVec

	// MoveDuration records end-to-end move handling latency in seconds.
	MoveDuration prometheus.Histogram

	// JudgmentsTotal counts sealed judgments.
	JudgmentsTotal prometheus.Counter

	// WSFailuresTotal counts dropped websocket sends.
	WSFailuresTotal prometheus.Counter

	// MatchesActive tracks matches currently held in memory.
	MatchesActive prometheus.Gauge
}

// NewMetrics registers all match-server metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		MovesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beadloom_moves_total",
			Help: "Moves processed, by type and outcome.",
		}, []string{"type", "outcome"}),
		MoveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beadloom_move_duration_seconds",
			Help:    "Move handling latency.",
			Buckets: prometheus.DefBuckets,
		}),
		JudgmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beadloom_judgments_total",
			Help: "Judgment scrolls sealed.",
		}),
		WSFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beadloom_ws_failures_total",
			Help: "Websocket frames dropped due to send failures.",
		}),
		MatchesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "beadloom_matches_active",
			Help: "Matches currently resident in the store.",
		}),
	}

	reg.MustRegister(
		m.MovesTotal,
		m.MoveDuration,
		m.JudgmentsTotal,
		m.WSFailuresTotal,
		m.MatchesActive,
	)
	return m
}

// RecordMove records one processed move with its outcome and latency.
func (m *Metrics) RecordMove(moveType, outcome string, elapsed time.Duration) {
	m.MovesTotal.WithLabelValues(moveType, outcome).Inc()
	m.MoveDuration.Observe(elapsed.Seconds())
}

// RecordWSFailure records a dropped websocket send.
func (m *Metrics) RecordWSFailure() {
	m.WSFailuresTotal.Inc()
}

// Handler returns the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
