package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion pipeline and the API.
type Metrics struct {
	IngestRuns     prometheus.Counter
	IngestSkipped  prometheus.Counter
	IngestRunning  prometheus.Gauge
	IngestDuration prometheus.Histogram

	// Per-city outcome metrics.
	CitiesProcessed *prometheus.CounterVec // labels: outcome={success,partial,error}
	ProviderCalls   *prometheus.CounterVec // labels: endpoint={weather,pollution,geocode}, outcome={success,error}

	AlertsCreated    *prometheus.CounterVec // labels: type, severity
	AlertsSuppressed prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.IngestRuns,
		m.IngestSkipped,
		m.IngestRunning,
		m.IngestDuration,
		m.CitiesProcessed,
		m.ProviderCalls,
		m.AlertsCreated,
		m.AlertsSuppressed,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default
// registry to avoid "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		IngestRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climateguard",
			Name:      "ingest_runs_total",
			Help:      "Total completed ingestion runs.",
		}),
		IngestSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climateguard",
			Name:      "ingest_skipped_total",
			Help:      "Scheduled ticks skipped because a run was already in progress.",
		}),
		IngestRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climateguard",
			Name:      "ingest_running",
			Help:      "1 while an ingestion run is active, 0 otherwise.",
		}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climateguard",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of a complete roster ingestion run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		CitiesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climateguard",
			Name:      "cities_processed_total",
			Help:      "Roster cities processed per run by outcome.",
		}, []string{"outcome"}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climateguard",
			Name:      "provider_calls_total",
			Help:      "Upstream provider calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		AlertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climateguard",
			Name:      "alerts_created_total",
			Help:      "Alerts created by type and severity.",
		}, []string{"type", "severity"}),
		AlertsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climateguard",
			Name:      "alerts_suppressed_total",
			Help:      "Alerts suppressed because an overlapping active alert existed.",
		}),
	}
}
