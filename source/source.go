package source

import (
	"context"
	"io"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

// Source is a finite, pull-based byte provider. Next returns the next
// raw chunk of the underlying stream; chunk sizes are whatever the
// provider finds natural and carry no meaning to consumers. Next
// returns io.EOF once the stream is exhausted and the terminal error
// after any failure. Sources are not restartable: a fresh Source must
// be opened to read the same data again.
//
// A Source owns its underlying resource (file handle, response body,
// connection) and releases it on Close.
type Source interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// Func adapts a pull function into a Source. Useful for tests and for
// callers that already have chunked data on hand.
type Func struct {
	NextFunc  func(ctx context.Context) ([]byte, error)
	CloseFunc func() error
}

// Next calls the wrapped pull function.
func (f *Func) Next(ctx context.Context) ([]byte, error) {
	if f.NextFunc == nil {
		return nil, io.EOF
	}
	return f.NextFunc(ctx)
}

// Close calls the wrapped close function, if any.
func (f *Func) Close() error {
	if f.CloseFunc == nil {
		return nil
	}
	return f.CloseFunc()
}

// Bytes wraps an in-memory slice, yielding it as a single piece. It
// does not copy: callers must not mutate the slice while streaming.
type Bytes struct {
	data   []byte
	done   bool
	closed bool
}

// NewBytes creates an in-memory source over data.
func NewBytes(data []byte) *Bytes {
	return &Bytes{data: data}
}

// Next yields the wrapped slice once, then io.EOF.
func (b *Bytes) Next(_ context.Context) ([]byte, error) {
	if b.closed {
		return nil, errors.ErrSourceClosed
	}
	if b.done {
		return nil, io.EOF
	}
	b.done = true
	if len(b.data) == 0 {
		return nil, io.EOF
	}
	return b.data, nil
}

// Close releases the slice reference.
func (b *Bytes) Close() error {
	b.closed = true
	b.data = nil
	return nil
}
