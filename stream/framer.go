package stream

// Framer re-chunks converted output into frames of exactly
// MaxFrameSize bytes, holding back whatever does not yet fill a frame.
// The final, possibly undersized frame is released by Flush.
type Framer struct {
	spec FrameSpec
	buf  []byte
}

// NewFramer validates the spec and returns an empty framer.
func NewFramer(spec FrameSpec) (*Framer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Framer{spec: spec}, nil
}

// Push appends data and returns every full frame now available, in
// order. Returned frames are freshly allocated and safe to retain.
func (f *Framer) Push(data []byte) [][]byte {
	if len(data) > 0 {
		f.buf = append(f.buf, data...)
	}

	max := f.spec.MaxFrameSize
	if len(f.buf) < max {
		return nil
	}

	n := len(f.buf) / max
	frames := make([][]byte, 0, n)
	for len(f.buf) >= max {
		frame := make([]byte, max)
		copy(frame, f.buf[:max])
		frames = append(frames, frame)
		f.buf = f.buf[max:]
	}

	// Compact the remainder so the backing array does not pin the
	// emitted frames' bytes.
	rest := make([]byte, len(f.buf))
	copy(rest, f.buf)
	f.buf = rest

	return frames
}

// Flush returns the final undersized frame, or nil when the buffer is
// empty. The framer is reusable afterwards.
func (f *Framer) Flush() []byte {
	if len(f.buf) == 0 {
		return nil
	}
	frame := f.buf
	f.buf = nil
	return frame
}

// Buffered returns how many bytes are waiting for a full frame.
func (f *Framer) Buffered() int {
	return len(f.buf)
}
