package format

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

func f32le(vals ...float32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func TestConvertElementIdentityIsByteExact(t *testing.T) {
	formats := []Format{
		{Base: U8, Components: 1},
		{Base: U16, Components: 4},
		{Base: F32, Components: 3},
		{Base: F64, Components: 2},
	}
	for _, f := range formats {
		in := make([]byte, f.ElementSize())
		for i := range in {
			in[i] = byte(i * 7)
		}
		out, err := ConvertElement(in, f, f)
		require.NoError(t, err, "format %s", f)
		assert.Equal(t, in, out, "format %s", f)
	}
}

func TestConvertElementZeroFillsExtraComponents(t *testing.T) {
	in := f32le(1.25, -2.5)
	out, err := ConvertElement(in, Format{Base: F32, Components: 2}, Format{Base: F32, Components: 3})
	require.NoError(t, err)

	require.Len(t, out, 12)
	assert.Equal(t, in, out[:8], "shared components copied verbatim")
	assert.Equal(t, []byte{0, 0, 0, 0}, out[8:], "extra target component zero-filled")
}

func TestConvertElementDropsExtraComponents(t *testing.T) {
	in := f32le(1, 2, 3, 4)
	out, err := ConvertElement(in, Format{Base: F32, Components: 4}, Format{Base: F32, Components: 2})
	require.NoError(t, err)

	if diff := cmp.Diff(f32le(1, 2), out); diff != "" {
		t.Errorf("element mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertElementCrossBaseAndComponents(t *testing.T) {
	// u16 scalar widened to an f64x3 element: value in slot 0, zeros after.
	in := []byte{0x39, 0x30} // 12345
	out, err := ConvertElement(in, Format{Base: U16, Components: 1}, Format{Base: F64, Components: 3})
	require.NoError(t, err)

	require.Len(t, out, 24)
	assert.Equal(t, 12345.0, math.Float64frombits(binary.LittleEndian.Uint64(out[:8])))
	assert.Equal(t, make([]byte, 16), out[8:])
}

func TestConvertElementRejectsWrongSize(t *testing.T) {
	_, err := ConvertElement([]byte{1, 2, 3}, Format{Base: U16, Components: 1}, Format{Base: U16, Components: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrElementMisaligned)
}

func TestConvertBatchOrderAndLength(t *testing.T) {
	// Four u16 values to f64x3 elements, matching the original cast test.
	vals := []uint16{12345, 54321, 65535, 0}
	in := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(in[i*2:], v)
	}

	out, err := ConvertBatch(in, Format{Base: U16, Components: 1}, Format{Base: F64, Components: 3})
	require.NoError(t, err)
	require.Len(t, out, len(vals)*24)

	for i, v := range vals {
		elem := out[i*24:]
		assert.Equal(t, float64(v), math.Float64frombits(binary.LittleEndian.Uint64(elem[:8])), "element %d", i)
		assert.Equal(t, make([]byte, 16), elem[8:24], "element %d padding", i)
	}
}

func TestConvertBatchIdenticalFormatsFastPath(t *testing.T) {
	in := f32le(1, 2, 3, 4, 5, 6)
	f := Format{Base: F32, Components: 3}

	out, err := ConvertBatch(in, f, f)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Fast path must copy, not alias: mutating the output cannot leak back.
	out[0] ^= 0xFF
	assert.NotEqual(t, in[0], out[0])
}

func TestConvertBatchRejectsMisalignedInput(t *testing.T) {
	_, err := ConvertBatch(make([]byte, 10), Format{Base: F32, Components: 1}, Format{Base: F32, Components: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrElementMisaligned)
}

func TestConvertBatchEmptyInput(t *testing.T) {
	out, err := ConvertBatch(nil, Format{Base: U32, Components: 2}, Format{Base: U16, Components: 2})
	require.NoError(t, err)
	assert.Empty(t, out)
}
