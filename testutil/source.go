// Package testutil provides shared test helpers for exercising the
// streaming pipeline: deterministic byte generators and scripted
// sources that deliver data in controlled chunk shapes.
package testutil

import (
	"context"
	"io"
)

// Pattern returns n bytes with value byte(i*31+7) at index i. The
// pattern repeats every 256 positions at the earliest, which makes
// off-by-one slicing mistakes visible in assertions.
func Pattern(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i*31 + 7)
	}
	return buf
}

// Split cuts data into chunks of at most size bytes, preserving order.
func Split(data []byte, size int) [][]byte {
	if size <= 0 {
		size = 1
	}
	var chunks [][]byte
	for len(data) > 0 {
		n := size
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	return chunks
}

// ChunkSource replays a fixed list of chunks, one per Next call, then
// reports io.EOF. It satisfies source.Source.
type ChunkSource struct {
	chunks [][]byte
	pos    int
	Closed bool
}

// NewChunkSource builds a source over the given chunks.
func NewChunkSource(chunks ...[]byte) *ChunkSource {
	return &ChunkSource{chunks: chunks}
}

// NewSplitSource builds a source that delivers data in chunks of at
// most size bytes.
func NewSplitSource(data []byte, size int) *ChunkSource {
	return &ChunkSource{chunks: Split(data, size)}
}

// Next returns the next scripted chunk.
func (c *ChunkSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.pos >= len(c.chunks) {
		return nil, io.EOF
	}
	chunk := c.chunks[c.pos]
	c.pos++
	return chunk, nil
}

// Close records that the source was released.
func (c *ChunkSource) Close() error {
	c.Closed = true
	return nil
}

// FaultSource yields the scripted chunks and then fails with Err
// instead of reaching end of stream.
type FaultSource struct {
	ChunkSource
	Err error
}

// NewFaultSource builds a source that delivers chunks then fails.
func NewFaultSource(err error, chunks ...[]byte) *FaultSource {
	return &FaultSource{ChunkSource: ChunkSource{chunks: chunks}, Err: err}
}

// Next returns the next chunk, or Err once the script is exhausted.
func (f *FaultSource) Next(ctx context.Context) ([]byte, error) {
	chunk, err := f.ChunkSource.Next(ctx)
	if err == io.EOF {
		return nil, f.Err
	}
	return chunk, err
}
