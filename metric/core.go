package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the core pipeline metrics shared by every stream.
type Metrics struct {
	// Pipeline lifecycle
	PipelinesActive prometheus.Gauge
	PipelinesTotal  *prometheus.CounterVec

	// Stage throughput
	BytesIngested     *prometheus.CounterVec
	ElementsExtracted *prometheus.CounterVec
	FramesEmitted     *prometheus.CounterVec

	// Latency and failures
	PullDuration *prometheus.HistogramVec
	ErrorsTotal  *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all core metrics
func NewMetrics() *Metrics {
	return &Metrics{
		PipelinesActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "darestream",
				Subsystem: "pipeline",
				Name:      "active",
				Help:      "Number of pipelines currently streaming",
			},
		),

		PipelinesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "darestream",
				Subsystem: "pipeline",
				Name:      "total",
				Help:      "Total number of pipelines opened, by terminal status",
			},
			[]string{"status"},
		),

		BytesIngested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "darestream",
				Subsystem: "ingest",
				Name:      "bytes_total",
				Help:      "Total raw bytes pulled from sources",
			},
			[]string{"source"},
		),

		ElementsExtracted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "darestream",
				Subsystem: "extract",
				Name:      "elements_total",
				Help:      "Total elements extracted from strided input",
			},
			[]string{"format"},
		),

		FramesEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "darestream",
				Subsystem: "frame",
				Name:      "emitted_total",
				Help:      "Total frames emitted downstream",
			},
			[]string{"format"},
		),

		PullDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "darestream",
				Subsystem: "pipeline",
				Name:      "pull_duration_seconds",
				Help:      "Duration of one downstream pull through all stages",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "darestream",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors by component and class",
			},
			[]string{"component", "class"},
		),
	}
}
