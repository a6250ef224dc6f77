package stream

import (
	"fmt"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

// StrideSpec locates the typed elements of one attribute inside an
// interleaved byte stream. Byte positions are relative to the start of
// the stream the Source delivers: the first element begins at Offset,
// each subsequent element ElementStride bytes after the previous one,
// and each element occupies its first ElementSize bytes.
type StrideSpec struct {
	// Offset is the number of leading bytes before the first element.
	Offset int64

	// ElementSize is the size of one element in bytes. It must match
	// the stored format the extracted bytes are interpreted as.
	ElementSize int

	// ElementStride is the distance between the starts of consecutive
	// elements. Equal to ElementSize for tightly packed data.
	ElementStride int

	// ElementCount caps how many elements are extracted. Zero means
	// unbounded: extract until the stream ends.
	ElementCount int64
}

// Validate reports whether the spec is internally consistent. It is
// called once at pipeline construction so malformed specs never fail
// mid-stream.
func (s StrideSpec) Validate() error {
	if s.Offset < 0 {
		return errors.WrapInvalid(errors.ErrMalformedStrideSpec,
			"StrideSpec", "Validate", fmt.Sprintf("negative offset %d", s.Offset))
	}
	if s.ElementSize < 1 {
		return errors.WrapInvalid(errors.ErrMalformedStrideSpec,
			"StrideSpec", "Validate", fmt.Sprintf("element size %d must be at least 1", s.ElementSize))
	}
	if s.ElementStride < s.ElementSize {
		return errors.WrapInvalid(errors.ErrMalformedStrideSpec,
			"StrideSpec", "Validate",
			fmt.Sprintf("stride %d smaller than element size %d", s.ElementStride, s.ElementSize))
	}
	if s.ElementCount < 0 {
		return errors.WrapInvalid(errors.ErrMalformedStrideSpec,
			"StrideSpec", "Validate", fmt.Sprintf("negative element count %d", s.ElementCount))
	}
	return nil
}

// Packed reports whether elements are tightly packed, with no padding
// between them.
func (s StrideSpec) Packed() bool {
	return s.ElementStride == s.ElementSize
}

// FrameSpec controls how converted output is re-chunked for delivery.
type FrameSpec struct {
	// MaxFrameSize is the exact size of every frame except the last,
	// which carries whatever remains.
	MaxFrameSize int
}

// Validate rejects frame sizes that cannot make progress.
func (s FrameSpec) Validate() error {
	if s.MaxFrameSize < 1 {
		return errors.WrapInvalid(errors.ErrMalformedFrameSpec,
			"FrameSpec", "Validate", fmt.Sprintf("max frame size %d must be at least 1", s.MaxFrameSize))
	}
	return nil
}
