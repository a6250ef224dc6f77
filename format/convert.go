package format

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

// Scalar IO. All reads and writes go through encoding/binary with
// little-endian order, which is byte-addressed and therefore safe for
// inputs that don't satisfy the natural alignment of the scalar.

func readU8(src []byte, off int) uint8   { return src[off] }
func readU16(src []byte, off int) uint16 { return binary.LittleEndian.Uint16(src[off:]) }
func readU32(src []byte, off int) uint32 { return binary.LittleEndian.Uint32(src[off:]) }
func readU64(src []byte, off int) uint64 { return binary.LittleEndian.Uint64(src[off:]) }
func readF32(src []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(src[off:]))
}
func readF64(src []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(src[off:]))
}

func writeU8(dst []byte, off int, v uint8)   { dst[off] = v }
func writeU16(dst []byte, off int, v uint16) { binary.LittleEndian.PutUint16(dst[off:], v) }
func writeU32(dst []byte, off int, v uint32) { binary.LittleEndian.PutUint32(dst[off:], v) }
func writeU64(dst []byte, off int, v uint64) { binary.LittleEndian.PutUint64(dst[off:], v) }
func writeF32(dst []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(v))
}
func writeF64(dst []byte, off int, v float64) {
	binary.LittleEndian.PutUint64(dst[off:], math.Float64bits(v))
}

// Saturating narrowing. Wider unsigned values clamp to the target's max
// instead of wrapping.

func satU8(v uint64) uint8 {
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}

func satU16(v uint64) uint16 {
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

func satU32(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// Float to unsigned integer: round to nearest, then saturate to
// [0, max]. NaN maps to zero. Comparisons happen in float64 so the
// probe against max is exact for every target width.

func roundSatU8(x float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	r := math.Round(x)
	if r <= 0 {
		return 0
	}
	if r >= math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(r)
}

func roundSatU16(x float64) uint16 {
	if math.IsNaN(x) {
		return 0
	}
	r := math.Round(x)
	if r <= 0 {
		return 0
	}
	if r >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(r)
}

func roundSatU32(x float64) uint32 {
	if math.IsNaN(x) {
		return 0
	}
	r := math.Round(x)
	if r <= 0 {
		return 0
	}
	if r >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(r)
}

func roundSatU64(x float64) uint64 {
	if math.IsNaN(x) {
		return 0
	}
	r := math.Round(x)
	if r <= 0 {
		return 0
	}
	// math.MaxUint64 is not representable in float64; 1<<64 is.
	if r >= float64(1<<63)*2 {
		return math.MaxUint64
	}
	return uint64(r)
}

// ConvertScalar reads one scalar of srcBase at src[srcOff:] and writes
// one scalar of dstBase at dst[dstOff:].
//
// The conversion rules are part of the observable contract:
//   - integer -> wider integer: zero-extend
//   - wider integer -> narrower integer: saturate, never wrap
//   - integer -> float: native cast
//   - float -> integer: round to nearest, saturate; NaN maps to 0
//   - float -> float: native widening/narrowing cast
//   - same base -> same base: typed read and write of the value
//
// All 36 base pairs are dispatched explicitly below so that an
// accidentally extended ScalarBase surfaces as ErrUnsupportedConversion
// rather than silently defaulting.
func ConvertScalar(src []byte, srcOff int, srcBase ScalarBase, dst []byte, dstOff int, dstBase ScalarBase) error {
	switch srcBase {
	case U8:
		v := readU8(src, srcOff)
		switch dstBase {
		case U8:
			writeU8(dst, dstOff, v)
		case U16:
			writeU16(dst, dstOff, uint16(v))
		case U32:
			writeU32(dst, dstOff, uint32(v))
		case U64:
			writeU64(dst, dstOff, uint64(v))
		case F32:
			writeF32(dst, dstOff, float32(v))
		case F64:
			writeF64(dst, dstOff, float64(v))
		default:
			return unsupported(srcBase, dstBase)
		}
	case U16:
		v := readU16(src, srcOff)
		switch dstBase {
		case U8:
			writeU8(dst, dstOff, satU8(uint64(v)))
		case U16:
			writeU16(dst, dstOff, v)
		case U32:
			writeU32(dst, dstOff, uint32(v))
		case U64:
			writeU64(dst, dstOff, uint64(v))
		case F32:
			writeF32(dst, dstOff, float32(v))
		case F64:
			writeF64(dst, dstOff, float64(v))
		default:
			return unsupported(srcBase, dstBase)
		}
	case U32:
		v := readU32(src, srcOff)
		switch dstBase {
		case U8:
			writeU8(dst, dstOff, satU8(uint64(v)))
		case U16:
			writeU16(dst, dstOff, satU16(uint64(v)))
		case U32:
			writeU32(dst, dstOff, v)
		case U64:
			writeU64(dst, dstOff, uint64(v))
		case F32:
			writeF32(dst, dstOff, float32(v))
		case F64:
			writeF64(dst, dstOff, float64(v))
		default:
			return unsupported(srcBase, dstBase)
		}
	case U64:
		v := readU64(src, srcOff)
		switch dstBase {
		case U8:
			writeU8(dst, dstOff, satU8(v))
		case U16:
			writeU16(dst, dstOff, satU16(v))
		case U32:
			writeU32(dst, dstOff, satU32(v))
		case U64:
			writeU64(dst, dstOff, v)
		case F32:
			writeF32(dst, dstOff, float32(v))
		case F64:
			writeF64(dst, dstOff, float64(v))
		default:
			return unsupported(srcBase, dstBase)
		}
	case F32:
		v := readF32(src, srcOff)
		switch dstBase {
		case U8:
			writeU8(dst, dstOff, roundSatU8(float64(v)))
		case U16:
			writeU16(dst, dstOff, roundSatU16(float64(v)))
		case U32:
			writeU32(dst, dstOff, roundSatU32(float64(v)))
		case U64:
			writeU64(dst, dstOff, roundSatU64(float64(v)))
		case F32:
			writeF32(dst, dstOff, v)
		case F64:
			writeF64(dst, dstOff, float64(v))
		default:
			return unsupported(srcBase, dstBase)
		}
	case F64:
		v := readF64(src, srcOff)
		switch dstBase {
		case U8:
			writeU8(dst, dstOff, roundSatU8(v))
		case U16:
			writeU16(dst, dstOff, roundSatU16(v))
		case U32:
			writeU32(dst, dstOff, roundSatU32(v))
		case U64:
			writeU64(dst, dstOff, roundSatU64(v))
		case F32:
			writeF32(dst, dstOff, float32(v))
		case F64:
			writeF64(dst, dstOff, v)
		default:
			return unsupported(srcBase, dstBase)
		}
	default:
		return unsupported(srcBase, dstBase)
	}
	return nil
}

func unsupported(src, dst ScalarBase) error {
	return errors.WrapInvalid(errors.ErrUnsupportedConversion,
		"ConvertScalar", "dispatch", fmt.Sprintf("%s -> %s", src, dst))
}
