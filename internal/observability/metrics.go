package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ferry_wait_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	MessagesConsumed     prometheus.Counter
	ObservationsProduced prometheus.Counter
	TransformErrors      prometheus.Counter
	MessagesIrrelevant   prometheus.Counter
	DuplicatesDropped    prometheus.Counter
	PipelineRunning      prometheus.Gauge

	// Observations by terminal and outcome={known,unknown}.
	Observations *prometheus.CounterVec

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.MessagesConsumed,
		m.ObservationsProduced,
		m.TransformErrors,
		m.MessagesIrrelevant,
		m.DuplicatesDropped,
		m.PipelineRunning,
		m.Observations,
		m.BatchSize,
		m.BatchProcessingDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// ObserveOutcome counts one observation for terminal.
func (m *Metrics) ObserveOutcome(terminal string, known bool) {
	outcome := "unknown"
	if known {
		outcome = "known"
	}
	m.Observations.WithLabelValues(terminal, outcome).Inc()
}

func newMetrics() *Metrics {
	return &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total posts read from the source topic.",
		}),
		ObservationsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_produced_total",
			Help:      "Total wait observations written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total posts that could not be decoded.",
		}),
		MessagesIrrelevant: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_irrelevant_total",
			Help:      "Total posts that mention no terminal wait.",
		}),
		DuplicatesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_dropped_total",
			Help:      "Observations skipped because the same ID was recently produced.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		Observations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_total",
			Help:      "Wait observations extracted by terminal and outcome.",
		}, []string{"terminal", "outcome"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of posts per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
