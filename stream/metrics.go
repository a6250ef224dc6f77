package stream

import (
	"time"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/metric"
)

// pipelineMetrics is a nil-safe recording facade over the core
// registry metrics. A nil receiver disables instrumentation so the
// pipeline never branches on whether metrics are configured.
type pipelineMetrics struct {
	core   *metric.Metrics
	source string
	format string
}

func newPipelineMetrics(registry *metric.MetricsRegistry, source, format string) *pipelineMetrics {
	if registry == nil {
		return nil
	}
	return &pipelineMetrics{
		core:   registry.CoreMetrics(),
		source: source,
		format: format,
	}
}

func (m *pipelineMetrics) opened() {
	if m == nil {
		return
	}
	m.core.PipelinesActive.Inc()
}

func (m *pipelineMetrics) closed(status string) {
	if m == nil {
		return
	}
	m.core.PipelinesActive.Dec()
	m.core.PipelinesTotal.WithLabelValues(status).Inc()
}

func (m *pipelineMetrics) bytesIngested(n int) {
	if m == nil {
		return
	}
	m.core.BytesIngested.WithLabelValues(m.source).Add(float64(n))
}

func (m *pipelineMetrics) elementsExtracted(n int) {
	if m == nil {
		return
	}
	m.core.ElementsExtracted.WithLabelValues(m.format).Add(float64(n))
}

func (m *pipelineMetrics) framesEmitted(n int) {
	if m == nil {
		return
	}
	m.core.FramesEmitted.WithLabelValues(m.format).Add(float64(n))
}

func (m *pipelineMetrics) pullDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.core.PullDuration.WithLabelValues(m.source).Observe(d.Seconds())
}

func (m *pipelineMetrics) errored(component string, err error) {
	if m == nil {
		return
	}
	m.core.ErrorsTotal.WithLabelValues(component, errors.Classify(err).String()).Inc()
}
