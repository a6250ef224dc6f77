package geometry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DannyDoesGraphics/DARE-sub000/metric"
	"github.com/DannyDoesGraphics/DARE-sub000/source"
	"github.com/DannyDoesGraphics/DARE-sub000/stream"
)

// Loader opens geometry buffers as streaming pipelines and tracks
// their residency. It is safe for concurrent use; each opened pipeline
// remains single-consumer.
type Loader struct {
	logger    *slog.Logger
	metrics   *metric.MetricsRegistry
	rateLimit int

	mu     sync.RWMutex
	states map[string]StreamState
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation on opened pipelines.
func WithMetrics(registry *metric.MetricsRegistry) LoaderOption {
	return func(l *Loader) {
		l.metrics = registry
	}
}

// WithRateLimit throttles every opened source to the given number of
// bytes per second. Zero disables throttling.
func WithRateLimit(bytesPerSecond int) LoaderOption {
	return func(l *Loader) {
		l.rateLimit = bytesPerSecond
	}
}

// NewLoader creates a loader with no buffers tracked.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger: slog.Default(),
		states: make(map[string]StreamState),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the residency of a named buffer.
func (l *Loader) State(name string) StreamState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.states[name]
}

func (l *Loader) setState(name string, state StreamState) {
	l.mu.Lock()
	l.states[name] = state
	l.mu.Unlock()
}

// Stream validates the geometry, opens its location, and returns a
// pipeline over it. The caller owns the pipeline and must Close it;
// residency moves to streaming and is finalized by Finish.
func (l *Loader) Stream(ctx context.Context, g Geometry) (*stream.Pipeline, error) {
	if err := g.Validate(); err != nil {
		l.setState(g.Name, StateFailed)
		return nil, err
	}

	src, remaining, err := g.Location.Open(ctx, g.Offset)
	if err != nil {
		l.setState(g.Name, StateFailed)
		l.logger.Error("open location failed",
			"geometry", g.Name, "backend", g.Location.Label(), "error", err)
		return nil, err
	}

	if l.rateLimit > 0 {
		limited, err := source.NewLimit(src, l.rateLimit, 0)
		if err != nil {
			_ = src.Close()
			l.setState(g.Name, StateFailed)
			return nil, err
		}
		src = limited
	}

	spec := g.StrideSpec()
	spec.Offset = remaining

	p, err := stream.NewPipeline(stream.PipelineConfig{
		Source:      src,
		SourceLabel: g.Location.Label(),
		Stride:      spec,
		Stored:      g.Stored,
		Target:      g.Target,
		Frame:       g.FrameSpec(),
		Partial:     g.Partial,
	},
		stream.WithLogger(l.logger.With("geometry", g.Name)),
		stream.WithMetrics(l.metrics),
	)
	if err != nil {
		_ = src.Close()
		l.setState(g.Name, StateFailed)
		return nil, err
	}

	l.setState(g.Name, StateStreaming)
	l.logger.Debug("geometry streaming",
		"geometry", g.Name, "backend", g.Location.Label(), "pipeline_id", p.ID())
	return p, nil
}

// Finish records the outcome of a stream the caller drove itself.
func (l *Loader) Finish(name string, err error) {
	if err != nil {
		l.setState(name, StateFailed)
		return
	}
	l.setState(name, StateResident)
}

// Load streams the whole buffer into memory and returns it converted
// and concatenated, updating residency on the way out.
func (l *Loader) Load(ctx context.Context, g Geometry) ([]byte, error) {
	p, err := l.Stream(ctx, g)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	out, err := p.Drain(ctx)
	l.Finish(g.Name, err)
	if err != nil {
		l.logger.Error("load failed", "geometry", g.Name, "error", err)
		return nil, err
	}
	l.logger.Debug("geometry resident", "geometry", g.Name, "bytes", len(out))
	return out, nil
}
