package stream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/testutil"
)

// extractAll pushes data in the given chunk sizes and flushes,
// concatenating everything the extractor emits.
func extractAll(t *testing.T, spec StrideSpec, policy PartialElementPolicy, data []byte, chunkSize int) ([]byte, error) {
	t.Helper()
	e, err := NewStrideExtractor(spec, policy)
	require.NoError(t, err)

	var out []byte
	for _, chunk := range testutil.Split(data, chunkSize) {
		out = append(out, e.Push(chunk)...)
	}
	return out, e.Flush()
}

func seq(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i)
	}
	return buf
}

func TestExtractInterleaved(t *testing.T) {
	// Two-byte elements every four bytes: positions 0-1, 4-5, 8-9.
	spec := StrideSpec{ElementSize: 2, ElementStride: 4}

	out, err := extractAll(t, spec, DropPartialElement, seq(12), 12)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 4, 5, 8, 9}, out)
}

func TestExtractWithOffset(t *testing.T) {
	spec := StrideSpec{Offset: 2, ElementSize: 2, ElementStride: 4}

	out, err := extractAll(t, spec, DropPartialElement, seq(12), 12)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 6, 7, 10, 11}, out)
}

func TestExtractPackedIsIdentity(t *testing.T) {
	data := testutil.Pattern(96)
	spec := StrideSpec{ElementSize: 4, ElementStride: 4}

	out, err := extractAll(t, spec, DropPartialElement, data, 96)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestExtractChunkingInvariance(t *testing.T) {
	// The extractor must produce identical output no matter how the
	// same bytes are sliced into chunks.
	data := testutil.Pattern(133)
	spec := StrideSpec{Offset: 5, ElementSize: 3, ElementStride: 8}

	want, err := extractAll(t, spec, DropPartialElement, data, len(data))
	require.NoError(t, err)
	require.NotEmpty(t, want)

	for size := 1; size <= 17; size++ {
		t.Run(fmt.Sprintf("chunk_%d", size), func(t *testing.T) {
			got, err := extractAll(t, spec, DropPartialElement, data, size)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestExtractElementSplitAcrossChunks(t *testing.T) {
	// A four-byte element delivered one byte at a time appears only
	// once its last byte arrives.
	spec := StrideSpec{ElementSize: 4, ElementStride: 4}
	e, err := NewStrideExtractor(spec, DropPartialElement)
	require.NoError(t, err)

	assert.Empty(t, e.Push([]byte{1}))
	assert.Empty(t, e.Push([]byte{2}))
	assert.Empty(t, e.Push([]byte{3}))
	assert.Equal(t, []byte{1, 2, 3, 4}, e.Push([]byte{4}))
}

func TestExtractElementCountStopsMidChunk(t *testing.T) {
	spec := StrideSpec{ElementSize: 2, ElementStride: 2, ElementCount: 3}

	out, err := extractAll(t, spec, DropPartialElement, seq(20), 20)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5}, out, "extraction stops after three elements")

	e, err := NewStrideExtractor(spec, DropPartialElement)
	require.NoError(t, err)
	e.Push(seq(20))
	assert.True(t, e.Done())
	assert.Empty(t, e.Push(seq(10)), "chunks after the count are ignored")
	assert.Equal(t, int64(3), e.Completed())
}

func TestExtractShortStreamYieldsFewerElements(t *testing.T) {
	// Asking for 100 elements from a stream that holds 2 is not an
	// error, just a shorter result.
	spec := StrideSpec{ElementSize: 2, ElementStride: 2, ElementCount: 100}

	out, err := extractAll(t, spec, DropPartialElement, seq(4), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3}, out)
}

func TestExtractPartialElementPolicies(t *testing.T) {
	// Seven bytes of four-byte elements: one whole element and three
	// trailing bytes.
	spec := StrideSpec{ElementSize: 4, ElementStride: 4}

	out, err := extractAll(t, spec, DropPartialElement, seq(7), 7)
	require.NoError(t, err, "default policy drops the partial silently")
	assert.Equal(t, []byte{0, 1, 2, 3}, out)

	out, err = extractAll(t, spec, ErrorOnPartialElement, seq(7), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrPartialElement)
	assert.Equal(t, []byte{0, 1, 2, 3}, out, "whole elements are still delivered")
}

func TestExtractOffsetBeyondStream(t *testing.T) {
	spec := StrideSpec{Offset: 100, ElementSize: 2, ElementStride: 2}

	out, err := extractAll(t, spec, DropPartialElement, seq(10), 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStrideSpecValidation(t *testing.T) {
	tests := []struct {
		name string
		spec StrideSpec
	}{
		{"negative offset", StrideSpec{Offset: -1, ElementSize: 2, ElementStride: 2}},
		{"zero element size", StrideSpec{ElementSize: 0, ElementStride: 4}},
		{"stride smaller than element", StrideSpec{ElementSize: 4, ElementStride: 2}},
		{"negative count", StrideSpec{ElementSize: 2, ElementStride: 2, ElementCount: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStrideExtractor(tt.spec, DropPartialElement)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrMalformedStrideSpec)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}
