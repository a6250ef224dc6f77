package format

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

func scalarBytes(t *testing.T, base ScalarBase, v float64) []byte {
	t.Helper()
	buf := make([]byte, base.Size())
	switch base {
	case U8:
		buf[0] = uint8(v)
	case U16:
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case U32:
		binary.LittleEndian.PutUint32(buf, uint32(v))
	case U64:
		binary.LittleEndian.PutUint64(buf, uint64(v))
	case F32:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(v)))
	case F64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	}
	return buf
}

func readBack(t *testing.T, base ScalarBase, buf []byte) float64 {
	t.Helper()
	switch base {
	case U8:
		return float64(buf[0])
	case U16:
		return float64(binary.LittleEndian.Uint16(buf))
	case U32:
		return float64(binary.LittleEndian.Uint32(buf))
	case U64:
		return float64(binary.LittleEndian.Uint64(buf))
	case F32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf)))
	case F64:
		return math.Float64frombits(binary.LittleEndian.Uint64(buf))
	}
	t.Fatalf("unknown base %v", base)
	return 0
}

var allBases = []ScalarBase{U8, U16, U32, U64, F32, F64}

// Every one of the 36 base pairs must be dispatched, and a small value
// must survive any of them unchanged.
func TestConvertScalarFullMatrix(t *testing.T) {
	for _, src := range allBases {
		for _, dst := range allBases {
			in := scalarBytes(t, src, 7)
			out := make([]byte, dst.Size())
			err := ConvertScalar(in, 0, src, out, 0, dst)
			require.NoError(t, err, "%s -> %s", src, dst)
			assert.Equal(t, 7.0, readBack(t, dst, out), "%s -> %s", src, dst)
		}
	}
}

func TestConvertScalarUnknownBase(t *testing.T) {
	bogus := ScalarBase(42)
	out := make([]byte, 8)

	err := ConvertScalar([]byte{1}, 0, bogus, out, 0, U8)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedConversion)

	err = ConvertScalar([]byte{1}, 0, U8, out, 0, bogus)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedConversion)
}

func TestIntegerWideningZeroExtends(t *testing.T) {
	in := scalarBytes(t, U8, 200)
	out := make([]byte, 8)
	require.NoError(t, ConvertScalar(in, 0, U8, out, 0, U64))
	assert.Equal(t, uint64(200), binary.LittleEndian.Uint64(out))
}

func TestIntegerNarrowingSaturates(t *testing.T) {
	tests := []struct {
		name string
		src  ScalarBase
		val  float64
		dst  ScalarBase
		want float64
	}{
		{"u16 over u8 max", U16, 300, U8, 255},
		{"u16 within u8", U16, 17, U8, 17},
		{"u32 over u16 max", U32, 70000, U16, 65535},
		{"u64 over u32 max", U64, 5e9, U32, math.MaxUint32},
		{"u64 over u8 max", U64, 1e12, U8, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scalarBytes(t, tt.src, tt.val)
			out := make([]byte, tt.dst.Size())
			require.NoError(t, ConvertScalar(in, 0, tt.src, out, 0, tt.dst))
			assert.Equal(t, tt.want, readBack(t, tt.dst, out))
		})
	}
}

func TestFloatToIntegerRoundsThenSaturates(t *testing.T) {
	tests := []struct {
		name string
		val  float64
		dst  ScalarBase
		want float64
	}{
		{"positive overflow clamps", 300.0, U8, 255},
		{"negative clamps to zero", -5.0, U8, 0},
		{"round up", 2.5, U8, 3},
		{"round down", 2.4, U8, 2},
		{"exact", 128, U8, 128},
		{"u16 overflow", 1e6, U16, 65535},
		{"u32 overflow", 1e12, U32, math.MaxUint32},
		{"huge to u64 clamps", 1e300, U64, float64(math.MaxUint64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Exercise both float bases against the same target.
			for _, src := range []ScalarBase{F32, F64} {
				in := scalarBytes(t, src, tt.val)
				out := make([]byte, tt.dst.Size())
				require.NoError(t, ConvertScalar(in, 0, src, out, 0, tt.dst))
				assert.Equal(t, tt.want, readBack(t, tt.dst, out), "src %s", src)
			}
		})
	}
}

func TestNaNMapsToZero(t *testing.T) {
	for _, src := range []ScalarBase{F32, F64} {
		in := scalarBytes(t, src, math.NaN())
		for _, dst := range []ScalarBase{U8, U16, U32, U64} {
			out := make([]byte, dst.Size())
			require.NoError(t, ConvertScalar(in, 0, src, out, 0, dst))
			assert.Equal(t, 0.0, readBack(t, dst, out), "%s -> %s", src, dst)
		}
	}
}

func TestIntegerRoundTripThroughWider(t *testing.T) {
	// u8 -> u32 -> u8 must be the identity for every u8 value.
	for v := 0; v <= 255; v++ {
		in := []byte{byte(v)}
		mid := make([]byte, 4)
		require.NoError(t, ConvertScalar(in, 0, U8, mid, 0, U32))
		out := make([]byte, 1)
		require.NoError(t, ConvertScalar(mid, 0, U32, out, 0, U8))
		assert.Equal(t, byte(v), out[0])
	}
}

func TestFloatNarrowingIsNativeCast(t *testing.T) {
	in := scalarBytes(t, F64, 1e50) // overflows float32 to +Inf, no saturation
	out := make([]byte, 4)
	require.NoError(t, ConvertScalar(in, 0, F64, out, 0, F32))
	got := math.Float32frombits(binary.LittleEndian.Uint32(out))
	assert.True(t, math.IsInf(float64(got), 1))
}

func TestConvertScalarUnalignedOffsets(t *testing.T) {
	// Scalars at odd offsets in both buffers.
	src := make([]byte, 9)
	binary.LittleEndian.PutUint32(src[3:], math.Float32bits(1.5))
	dst := make([]byte, 11)
	require.NoError(t, ConvertScalar(src, 3, F32, dst, 1, F64))
	assert.Equal(t, 1.5, math.Float64frombits(binary.LittleEndian.Uint64(dst[1:])))
}
