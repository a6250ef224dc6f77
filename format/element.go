package format

import (
	"fmt"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

// ConvertElement re-encodes a single element from the stored format into
// the target format. Component slot i of the stored element maps to
// component slot i of the target for i < min(stored, target) components;
// extra source components are dropped and extra target components are
// left as zero bytes. The result is always exactly
// target.ElementSize() bytes.
//
// The function is pure: it allocates its own output and touches no
// shared state, so it is safe to call concurrently across elements.
func ConvertElement(stored []byte, storedF, targetF Format) ([]byte, error) {
	if len(stored) != storedF.ElementSize() {
		return nil, errors.WrapInvalid(errors.ErrElementMisaligned,
			"ConvertElement", "check", fmt.Sprintf("got %d bytes, stored format %s needs %d",
				len(stored), storedF, storedF.ElementSize()))
	}

	out := make([]byte, targetF.ElementSize())
	common := min(storedF.Components, targetF.Components)
	srcScalar := storedF.Base.Size()
	dstScalar := targetF.Base.Size()

	for c := 0; c < common; c++ {
		if err := ConvertScalar(stored, c*srcScalar, storedF.Base, out, c*dstScalar, targetF.Base); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ConvertBatch applies ConvertElement to every element of a tightly
// packed buffer, in order, and concatenates the results. The input must
// be an exact multiple of storedF.ElementSize(); anything else is a
// contract violation by the upstream extractor and reports
// ErrElementMisaligned.
//
// Identical stored and target formats take a copy fast path with no
// per-scalar dispatch.
func ConvertBatch(buf []byte, storedF, targetF Format) ([]byte, error) {
	inSize := storedF.ElementSize()
	if len(buf)%inSize != 0 {
		return nil, errors.WrapInvalid(errors.ErrElementMisaligned,
			"ConvertBatch", "check", fmt.Sprintf("buffer of %d bytes is not a multiple of %d (%s)",
				len(buf), inSize, storedF))
	}

	if storedF == targetF {
		out := make([]byte, len(buf))
		copy(out, buf)
		return out, nil
	}

	elems := len(buf) / inSize
	outSize := targetF.ElementSize()
	out := make([]byte, elems*outSize)
	common := min(storedF.Components, targetF.Components)
	srcScalar := storedF.Base.Size()
	dstScalar := targetF.Base.Size()

	for e := 0; e < elems; e++ {
		inOff := e * inSize
		outOff := e * outSize
		for c := 0; c < common; c++ {
			if err := ConvertScalar(buf, inOff+c*srcScalar, storedF.Base, out, outOff+c*dstScalar, targetF.Base); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
