package stream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/format"
	"github.com/DannyDoesGraphics/DARE-sub000/metric"
	"github.com/DannyDoesGraphics/DARE-sub000/source"
)

// PipelineConfig describes one asset stream end to end: where the raw
// bytes come from, how elements are laid out inside them, what format
// they are stored and wanted in, and how the converted output is
// framed for delivery.
type PipelineConfig struct {
	Source      source.Source
	SourceLabel string // metrics label, "unknown" when empty

	Stride StrideSpec
	Stored format.Format
	Target format.Format
	Frame  FrameSpec

	Partial PartialElementPolicy
}

// Pipeline pulls raw chunks from a Source, extracts the strided
// elements, converts them to the target format, and re-frames the
// result. All work is demand-driven: each Next call pulls from the
// source only until one more frame is available.
//
// A Pipeline is single-consumer and not safe for concurrent use; run
// independent pipelines for concurrency.
type Pipeline struct {
	id      string
	cfg     PipelineConfig
	logger  *slog.Logger
	metrics *pipelineMetrics

	extractor *StrideExtractor
	framer    *Framer

	frames [][]byte
	eof    bool
	err    error
	closed bool
}

// Option customizes a Pipeline beyond its config.
type Option func(*Pipeline)

// WithLogger attaches a structured logger. The pipeline id is added as
// an attribute.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation. A nil registry
// leaves metrics disabled.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(p *Pipeline) {
		p.metrics = newPipelineMetrics(registry, p.cfg.SourceLabel, p.cfg.Target.String())
	}
}

// NewPipeline validates the whole configuration eagerly and returns a
// pipeline positioned at the start of the stream. No bytes are pulled
// until the first Next call.
func NewPipeline(cfg PipelineConfig, opts ...Option) (*Pipeline, error) {
	if cfg.Source == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig,
			"Pipeline", "NewPipeline", "source required")
	}
	if err := cfg.Stored.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Target.Validate(); err != nil {
		return nil, err
	}
	if cfg.Stride.ElementSize != cfg.Stored.ElementSize() {
		return nil, errors.WrapInvalid(errors.ErrMalformedStrideSpec,
			"Pipeline", "NewPipeline",
			fmt.Sprintf("stride element size %d does not match stored format %s (%d bytes)",
				cfg.Stride.ElementSize, cfg.Stored, cfg.Stored.ElementSize()))
	}
	if cfg.SourceLabel == "" {
		cfg.SourceLabel = "unknown"
	}

	extractor, err := NewStrideExtractor(cfg.Stride, cfg.Partial)
	if err != nil {
		return nil, err
	}
	framer, err := NewFramer(cfg.Frame)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		id:        uuid.NewString(),
		cfg:       cfg,
		logger:    slog.Default(),
		extractor: extractor,
		framer:    framer,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("pipeline_id", p.id, "source", cfg.SourceLabel)

	p.metrics.opened()
	p.logger.Debug("pipeline opened",
		"stored", cfg.Stored.String(),
		"target", cfg.Target.String(),
		"stride", cfg.Stride.ElementStride,
		"max_frame", cfg.Frame.MaxFrameSize)
	return p, nil
}

// ID returns the pipeline's unique identifier, used in logs.
func (p *Pipeline) ID() string {
	return p.id
}

// Next returns the next frame of converted output. It pulls from the
// source as many times as needed to complete one frame, returns io.EOF
// after the final frame, and passes source errors through unchanged so
// callers can classify them. Once the configured element count is
// reached the source is left alone, whatever trailing bytes it still
// holds. A Next call that fails with a context error may be retried
// with a live context; the stream position is unaffected.
func (p *Pipeline) Next(ctx context.Context) ([]byte, error) {
	if p.closed {
		return nil, errors.ErrSourceClosed
	}

	for {
		if len(p.frames) > 0 {
			frame := p.frames[0]
			p.frames = p.frames[1:]
			return frame, nil
		}
		if p.err != nil {
			return nil, p.err
		}
		if p.eof {
			return nil, io.EOF
		}

		start := time.Now()
		chunk, err := p.cfg.Source.Next(ctx)
		if err == io.EOF {
			p.finish()
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				// Cancellation is retryable: the stream position is
				// intact, so a later Next with a live context resumes.
				return nil, err
			}
			p.metrics.errored("source", err)
			p.metrics.closed("error")
			p.err = err
			p.logger.Error("source failed", "error", err)
			return nil, err
		}

		p.metrics.bytesIngested(len(chunk))
		if err := p.process(chunk); err != nil {
			return nil, err
		}
		p.metrics.pullDuration(time.Since(start))

		// A satisfied element count completes the stream; the source is
		// not pulled again.
		if p.extractor.Done() {
			p.finish()
		}
	}
}

// process runs one raw chunk through extraction, conversion, and
// framing.
func (p *Pipeline) process(chunk []byte) error {
	extracted := p.extractor.Push(chunk)
	if len(extracted) == 0 {
		return nil
	}

	converted, err := format.ConvertBatch(extracted, p.cfg.Stored, p.cfg.Target)
	if err != nil {
		p.metrics.errored("convert", err)
		p.metrics.closed("error")
		p.err = err
		p.logger.Error("conversion failed", "error", err)
		return err
	}
	p.metrics.elementsExtracted(len(extracted) / p.cfg.Stored.ElementSize())

	frames := p.framer.Push(converted)
	p.metrics.framesEmitted(len(frames))
	p.frames = append(p.frames, frames...)
	return nil
}

// finish flushes both stages at end of stream.
func (p *Pipeline) finish() {
	if err := p.extractor.Flush(); err != nil {
		p.metrics.errored("extract", err)
		p.metrics.closed("error")
		p.err = err
		p.logger.Error("flush failed", "error", err)
		return
	}
	if tail := p.framer.Flush(); len(tail) > 0 {
		p.metrics.framesEmitted(1)
		p.frames = append(p.frames, tail)
	}
	p.eof = true
	p.metrics.closed("success")
	p.logger.Debug("pipeline drained", "elements", p.extractor.Completed())
}

// Drain consumes the rest of the stream and returns all remaining
// output as one buffer.
func (p *Pipeline) Drain(ctx context.Context) ([]byte, error) {
	var out []byte
	for {
		frame, err := p.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, frame...)
	}
}

// Close releases the underlying source. The pipeline cannot be used
// afterwards.
func (p *Pipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if !p.eof && p.err == nil {
		p.metrics.closed("abandoned")
	}
	return p.cfg.Source.Close()
}
