package geometry

import (
	"context"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/source"
)

// Location names where a geometry buffer's bytes live and knows how to
// open a Source over them. Open receives the buffer's byte offset and
// returns the part of it the stride walk must still absorb: backends
// with random access (files) consume the offset themselves, streaming
// backends hand it back so the extractor skips it.
type Location interface {
	Open(ctx context.Context, offset int64) (source.Source, int64, error)

	// Label is the metrics label and log attribute for this backend.
	Label() string
}

// FileLocation reads from a file on disk. The offset is applied with a
// seek, so no leading bytes are transferred.
type FileLocation struct {
	Path     string
	ReadSize int
}

// Open opens the file positioned at offset.
func (l FileLocation) Open(_ context.Context, offset int64) (source.Source, int64, error) {
	src, err := source.OpenFile(source.FileConfig{
		Path:     l.Path,
		Offset:   offset,
		ReadSize: l.ReadSize,
	})
	if err != nil {
		return nil, 0, err
	}
	return src, 0, nil
}

// Label identifies the backend in metrics and logs.
func (l FileLocation) Label() string { return "file" }

// URLLocation fetches a URL over HTTP. The body arrives from byte
// zero, so the offset is left to the stride walk.
type URLLocation struct {
	URL      string
	ReadSize int
}

// Open issues the GET request.
func (l URLLocation) Open(ctx context.Context, offset int64) (source.Source, int64, error) {
	src, err := source.OpenHTTP(ctx, source.HTTPConfig{
		URL:      l.URL,
		ReadSize: l.ReadSize,
	})
	if err != nil {
		return nil, 0, err
	}
	return src, offset, nil
}

// Label identifies the backend in metrics and logs.
func (l URLLocation) Label() string { return "http" }

// MemoryLocation wraps bytes already in memory.
type MemoryLocation struct {
	Data []byte
}

// Open returns an in-memory source over the data, sliced past the
// offset. Memory is random access, so no leading bytes are streamed.
func (l MemoryLocation) Open(_ context.Context, offset int64) (source.Source, int64, error) {
	if offset >= int64(len(l.Data)) {
		return source.NewBytes(nil), 0, nil
	}
	return source.NewBytes(l.Data[offset:]), 0, nil
}

// Label identifies the backend in metrics and logs.
func (l MemoryLocation) Label() string { return "memory" }

// NATSLocation consumes a JetStream subject carrying the buffer's
// bytes.
type NATSLocation struct {
	Config source.NATSConfig
}

// Open binds the configured consumer.
func (l NATSLocation) Open(ctx context.Context, offset int64) (source.Source, int64, error) {
	src, err := source.OpenNATS(ctx, l.Config)
	if err != nil {
		return nil, 0, err
	}
	return src, offset, nil
}

// Label identifies the backend in metrics and logs.
func (l NATSLocation) Label() string { return "nats" }

// WebSocketLocation reads binary messages from a websocket endpoint.
type WebSocketLocation struct {
	URL string
}

// Open dials the endpoint.
func (l WebSocketLocation) Open(ctx context.Context, offset int64) (source.Source, int64, error) {
	src, err := source.OpenWebSocket(ctx, source.WebSocketConfig{URL: l.URL})
	if err != nil {
		return nil, 0, err
	}
	return src, offset, nil
}

// Label identifies the backend in metrics and logs.
func (l WebSocketLocation) Label() string { return "websocket" }

// validateLocation rejects nil locations early with a uniform error.
func validateLocation(loc Location) error {
	if loc == nil {
		return errors.WrapInvalid(errors.ErrMissingConfig,
			"Geometry", "Validate", "location required")
	}
	return nil
}
