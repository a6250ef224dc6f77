package stream

import (
	"fmt"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

// PartialElementPolicy decides what happens when the stream ends part
// way through an element.
type PartialElementPolicy int

const (
	// DropPartialElement silently discards a trailing partial element.
	// This is the default: upstream truncation is treated as the end
	// of usable data.
	DropPartialElement PartialElementPolicy = iota

	// ErrorOnPartialElement reports errors.ErrPartialElement instead,
	// for callers that want truncation surfaced.
	ErrorOnPartialElement
)

// StrideExtractor walks a raw byte stream and collects the element
// bytes a StrideSpec describes, independent of how the stream is
// chunked. Push accepts chunks of any size and returns only whole
// elements; bytes of an element still in flight are buffered until its
// remainder arrives.
type StrideExtractor struct {
	spec   StrideSpec
	policy PartialElementPolicy

	pos       int64 // absolute stream position of the next unseen byte
	completed int64 // whole elements emitted so far
	pending   []byte
	done      bool
}

// NewStrideExtractor validates the spec and returns an extractor at
// stream position zero.
func NewStrideExtractor(spec StrideSpec, policy PartialElementPolicy) (*StrideExtractor, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &StrideExtractor{spec: spec, policy: policy}, nil
}

// Done reports whether the configured element count has been reached.
// Further chunks are ignored once done.
func (e *StrideExtractor) Done() bool {
	return e.done
}

// Completed returns the number of whole elements extracted so far.
func (e *StrideExtractor) Completed() int64 {
	return e.completed
}

// Push consumes one chunk and returns the whole elements completed by
// it, tightly packed in stream order. The returned slice is valid
// until the next call.
func (e *StrideExtractor) Push(chunk []byte) []byte {
	if e.done || len(chunk) == 0 {
		e.pos += int64(len(chunk))
		return nil
	}

	esz := int64(e.spec.ElementSize)
	stride := int64(e.spec.ElementStride)

	for len(chunk) > 0 {
		// Leading bytes before the first element are padding.
		if e.pos < e.spec.Offset {
			skip := e.spec.Offset - e.pos
			if skip > int64(len(chunk)) {
				skip = int64(len(chunk))
			}
			e.pos += skip
			chunk = chunk[skip:]
			continue
		}

		rel := e.pos - e.spec.Offset
		index := rel / stride
		within := rel % stride

		if e.spec.ElementCount > 0 && index >= e.spec.ElementCount {
			e.done = true
			e.pos += int64(len(chunk))
			break
		}

		if within < esz {
			take := esz - within
			if take > int64(len(chunk)) {
				take = int64(len(chunk))
			}
			e.pending = append(e.pending, chunk[:take]...)
			e.pos += take
			chunk = chunk[take:]
			continue
		}

		// Padding between this element and the next.
		skip := stride - within
		if skip > int64(len(chunk)) {
			skip = int64(len(chunk))
		}
		e.pos += skip
		chunk = chunk[skip:]
	}

	return e.cutWhole()
}

// cutWhole slices completed elements off the pending buffer.
func (e *StrideExtractor) cutWhole() []byte {
	esz := e.spec.ElementSize
	whole := (len(e.pending) / esz) * esz
	if whole == 0 {
		return nil
	}

	out := e.pending[:whole]
	rest := len(e.pending) - whole
	remainder := make([]byte, rest)
	copy(remainder, e.pending[whole:])
	e.pending = remainder

	e.completed += int64(whole / esz)
	if e.spec.ElementCount > 0 && e.completed >= e.spec.ElementCount {
		e.done = true
	}
	return out
}

// Flush ends the stream. A trailing partial element is discarded or
// reported according to the configured policy; a stream that ends
// before reaching ElementCount is not an error.
func (e *StrideExtractor) Flush() error {
	if len(e.pending) == 0 {
		return nil
	}
	n := len(e.pending)
	e.pending = nil
	if e.policy == ErrorOnPartialElement {
		return errors.WrapInvalid(errors.ErrPartialElement,
			"StrideExtractor", "Flush", fmt.Sprintf("stream ended %d bytes into an element", n))
	}
	return nil
}
