package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for an archiver run.
type Metrics struct {
	Days          *prometheus.CounterVec // labels: status={OK,SKIP,ERR}
	FetchDuration prometheus.Histogram
	BytesWritten  prometheus.Counter
	Published     prometheus.Counter
	PublishErrors prometheus.Counter
	RunInProgress prometheus.Gauge

	registry *prometheus.Registry
}

func newCollectors() *Metrics {
	return &Metrics{
		Days: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soundings",
			Name:      "days_total",
			Help:      "Days processed by outcome status.",
		}, []string{"status"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "soundings",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a single sounding request.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "soundings",
			Name:      "bytes_written_total",
			Help:      "Bytes of cleaned report text written to disk.",
		}),
		Published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "soundings",
			Name:      "published_total",
			Help:      "Reports published to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "soundings",
			Name:      "publish_errors_total",
			Help:      "Reports that failed to publish to Kafka.",
		}),
		RunInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "soundings",
			Name:      "run_in_progress",
			Help:      "1 while the archiver is processing days, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Days,
		m.FetchDuration,
		m.BytesWritten,
		m.Published,
		m.PublishErrors,
		m.RunInProgress,
	}
}

// NewMetrics creates and registers all archiver metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newCollectors()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics on a private registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newCollectors()
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(m.collectors()...)
	return m
}

// Gatherer returns the registry the metrics were registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m.registry != nil {
		return m.registry
	}
	return prometheus.DefaultGatherer
}

// WriteTextfile exports the current metric values in the text exposition
// format, for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Gatherer())
}
