package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for share lookups.
type Metrics struct {
	Lookups *prometheus.CounterVec // labels: outcome={ok,validation,transport,parse,data}

	// SEC API metrics.
	UpstreamRequests *prometheus.CounterVec // labels: code={200,404,...,error}
	UpstreamDuration prometheus.Histogram

	// Result publishing metrics.
	ResultsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()
	prometheus.MustRegister(
		m.Lookups,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.ResultsPublished,
		m.PublishErrors,
		m.PublisherEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sec_shares",
			Name:      "lookups_total",
			Help:      "Share range lookups by outcome.",
		}, []string{"outcome"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sec_shares",
			Name:      "upstream_requests_total",
			Help:      "SEC companyconcept requests by HTTP status code, or \"error\" when no response arrived.",
		}, []string{"code"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sec_shares",
			Name:      "upstream_duration_seconds",
			Help:      "SEC companyconcept request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ResultsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sec_shares",
			Name:      "results_published_total",
			Help:      "Share ranges written to the results topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sec_shares",
			Name:      "publish_errors_total",
			Help:      "Share ranges that could not be written to the results topic.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sec_shares",
			Name:      "publisher_enabled",
			Help:      "1 when results are published to Kafka, 0 otherwise.",
		}),
	}
}
