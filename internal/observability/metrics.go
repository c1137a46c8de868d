package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "venus"

// Metrics holds the Prometheus counters and histograms for dataset generation.
type Metrics struct {
	DatasetsGenerated  *prometheus.CounterVec // labels: data_type
	RecordsGenerated   *prometheus.CounterVec // labels: data_type
	GenerationDuration prometheus.Histogram

	// Sink metrics.
	SinkWrites *prometheus.CounterVec // labels: sink, outcome={success,error}

	// HTTP dataset endpoints.
	HTTPDatasetRequests *prometheus.CounterVec // labels: outcome={success,not_found,bad_request,error}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers all metrics on reg. A nil reg leaves them
// unregistered, which suits one-shot CLI runs that never expose /metrics.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	if reg != nil {
		reg.MustRegister(
			m.DatasetsGenerated,
			m.RecordsGenerated,
			m.GenerationDuration,
			m.SinkWrites,
			m.HTTPDatasetRequests,
		)
	}
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_generated_total",
			Help:      "Datasets generated by data type.",
		}, []string{"data_type"}),
		RecordsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_generated_total",
			Help:      "Yearly records generated by data type.",
		}, []string{"data_type"}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of a single dataset generation.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		SinkWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_writes_total",
			Help:      "Dataset writes by sink and outcome.",
		}, []string{"sink", "outcome"}),
		HTTPDatasetRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_dataset_requests_total",
			Help:      "Dataset endpoint requests by outcome.",
		}, []string{"outcome"}),
	}
}
