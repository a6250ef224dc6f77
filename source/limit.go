package source

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

// Limit throttles another source to a byte-per-second budget. The
// budget is charged after each chunk arrives, so a chunk larger than
// the burst is paid for across several waits rather than rejected.
type Limit struct {
	inner   Source
	limiter *rate.Limiter
	burst   int
}

// NewLimit wraps inner with a bytes-per-second rate limit. Burst
// defaults to one second of budget when zero or negative.
func NewLimit(inner Source, bytesPerSecond int, burst int) (*Limit, error) {
	if inner == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "LimitSource", "NewLimit", "inner source required")
	}
	if bytesPerSecond <= 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "LimitSource", "NewLimit", "bytes per second must be positive")
	}
	if burst <= 0 {
		burst = bytesPerSecond
	}
	return &Limit{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), burst),
		burst:   burst,
	}, nil
}

// Next pulls a chunk from the inner source, then blocks until the
// rate budget covers its size.
func (s *Limit) Next(ctx context.Context) ([]byte, error) {
	chunk, err := s.inner.Next(ctx)
	if err != nil {
		return nil, err
	}

	remaining := len(chunk)
	for remaining > 0 {
		n := remaining
		if n > s.burst {
			n = s.burst
		}
		// WaitN fails only for context reasons: already done, or the
		// deadline cannot cover the wait. Surface the context error so
		// callers see the same retryable shape as the other sources.
		if err := s.limiter.WaitN(ctx, n); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, context.DeadlineExceeded
		}
		remaining -= n
	}
	return chunk, nil
}

// Close closes the inner source.
func (s *Limit) Close() error {
	return s.inner.Close()
}
