package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

// ScalarBase identifies one of the six primitive numeric encodings from
// which element formats are composed. All integer bases are unsigned;
// all scalars are little-endian on the wire.
type ScalarBase int

const (
	// U8 is an unsigned 8-bit integer
	U8 ScalarBase = iota
	// U16 is an unsigned 16-bit integer
	U16
	// U32 is an unsigned 32-bit integer
	U32
	// U64 is an unsigned 64-bit integer
	U64
	// F32 is an IEEE-754 single-precision float
	F32
	// F64 is an IEEE-754 double-precision float
	F64
)

// MaxComponents is the widest element this engine handles (a 4x4 matrix).
const MaxComponents = 16

// Size returns the byte width of one scalar of this base.
func (b ScalarBase) Size() int {
	switch b {
	case U8:
		return 1
	case U16:
		return 2
	case U32:
		return 4
	case U64:
		return 8
	case F32:
		return 4
	case F64:
		return 8
	default:
		return 0
	}
}

// Float reports whether the base is a floating-point encoding.
func (b ScalarBase) Float() bool {
	return b == F32 || b == F64
}

// String returns the lowercase name of the base ("u8", "f32", ...).
func (b ScalarBase) String() string {
	switch b {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return fmt.Sprintf("scalarbase(%d)", int(b))
	}
}

// Format describes one element's encoding: a scalar base and a component
// count (1 for scalars, 2-16 for vectors and matrices). Format is an
// immutable value type with no identity; compare with ==.
type Format struct {
	Base       ScalarBase
	Components int
}

// New builds a Format and validates it.
func New(base ScalarBase, components int) (Format, error) {
	f := Format{Base: base, Components: components}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

// Validate checks the format invariants: a known scalar base and a
// component count in [1, MaxComponents].
func (f Format) Validate() error {
	if f.Base.Size() == 0 {
		return errors.WrapInvalid(errors.ErrMalformedFormat,
			"Format", "Validate", fmt.Sprintf("unknown scalar base %d", int(f.Base)))
	}
	if f.Components < 1 || f.Components > MaxComponents {
		return errors.WrapInvalid(errors.ErrMalformedFormat,
			"Format", "Validate", fmt.Sprintf("component count %d outside [1,%d]", f.Components, MaxComponents))
	}
	return nil
}

// ElementSize returns the byte size of one tightly packed element.
func (f Format) ElementSize() int {
	return f.Base.Size() * f.Components
}

// String renders the format as "f32x3", or just "u16" for scalars.
func (f Format) String() string {
	if f.Components == 1 {
		return f.Base.String()
	}
	return fmt.Sprintf("%sx%d", f.Base, f.Components)
}

// Parse reads a format string of the form "u8", "f32x3", "u16x4".
func Parse(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	components := 1
	if i := strings.IndexByte(name, 'x'); i >= 0 {
		n, err := strconv.Atoi(name[i+1:])
		if err != nil {
			return Format{}, errors.WrapInvalid(errors.ErrMalformedFormat,
				"Format", "Parse", fmt.Sprintf("bad component count in %q", s))
		}
		components = n
		name = name[:i]
	}

	var base ScalarBase
	switch name {
	case "u8":
		base = U8
	case "u16":
		base = U16
	case "u32":
		base = U32
	case "u64":
		base = U64
	case "f32":
		base = F32
	case "f64":
		base = F64
	default:
		return Format{}, errors.WrapInvalid(errors.ErrMalformedFormat,
			"Format", "Parse", fmt.Sprintf("unknown scalar base in %q", s))
	}

	return New(base, components)
}
