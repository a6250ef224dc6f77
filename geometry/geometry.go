package geometry

import (
	"fmt"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/format"
	"github.com/DannyDoesGraphics/DARE-sub000/stream"
)

// Geometry describes one attribute buffer of an asset: where its bytes
// live, how elements are laid out inside them, and what format the
// consumer wants them in.
type Geometry struct {
	// Name identifies the buffer in logs and residency tracking.
	Name string

	Location Location

	// Stored is the element format as laid out at the location;
	// Target is the format delivered downstream.
	Stored format.Format
	Target format.Format

	// Offset is the byte offset of the first element.
	Offset int64

	// Stride is the distance between element starts. Zero means
	// tightly packed.
	Stride int

	// Count caps the number of elements. Zero means all of them.
	Count int64

	// FrameSize is the delivery frame size in bytes. Zero picks
	// DefaultFrameSize.
	FrameSize int

	// Partial controls what a trailing partial element does at end of
	// stream.
	Partial stream.PartialElementPolicy
}

// DefaultFrameSize is used when a Geometry does not set one.
const DefaultFrameSize = 64 * 1024

// Validate checks the descriptor without touching the location.
func (g Geometry) Validate() error {
	if g.Name == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Geometry", "Validate", "name required")
	}
	if err := validateLocation(g.Location); err != nil {
		return err
	}
	if err := g.Stored.Validate(); err != nil {
		return err
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if g.Offset < 0 {
		return errors.WrapInvalid(errors.ErrMalformedStrideSpec, "Geometry", "Validate",
			fmt.Sprintf("negative offset %d", g.Offset))
	}
	if g.Stride != 0 && g.Stride < g.Stored.ElementSize() {
		return errors.WrapInvalid(errors.ErrMalformedStrideSpec, "Geometry", "Validate",
			fmt.Sprintf("stride %d smaller than stored element %s", g.Stride, g.Stored))
	}
	if err := g.StrideSpec().Validate(); err != nil {
		return err
	}
	return g.FrameSpec().Validate()
}

// StrideSpec derives the extraction spec. The location-level offset is
// not included here: the loader decides at open time how much of it
// the source already consumed.
func (g Geometry) StrideSpec() stream.StrideSpec {
	stride := g.Stride
	if stride == 0 {
		stride = g.Stored.ElementSize()
	}
	return stream.StrideSpec{
		ElementSize:   g.Stored.ElementSize(),
		ElementStride: stride,
		ElementCount:  g.Count,
	}
}

// FrameSpec derives the framing spec.
func (g Geometry) FrameSpec() stream.FrameSpec {
	size := g.FrameSize
	if size == 0 {
		size = DefaultFrameSize
	}
	return stream.FrameSpec{MaxFrameSize: size}
}
