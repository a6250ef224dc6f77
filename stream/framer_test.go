package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/testutil"
)

func TestFramerExactFramesWithTail(t *testing.T) {
	f, err := NewFramer(FrameSpec{MaxFrameSize: 2})
	require.NoError(t, err)

	frames := f.Push([]byte{10, 20, 30, 40, 50})
	require.Len(t, frames, 2)
	assert.Equal(t, []byte{10, 20}, frames[0])
	assert.Equal(t, []byte{30, 40}, frames[1])

	assert.Equal(t, []byte{50}, f.Flush())
	assert.Nil(t, f.Flush(), "second flush is empty")
}

func TestFramerAccumulatesAcrossPushes(t *testing.T) {
	f, err := NewFramer(FrameSpec{MaxFrameSize: 10})
	require.NoError(t, err)

	assert.Nil(t, f.Push([]byte{1, 2, 3}))
	assert.Nil(t, f.Push([]byte{4, 5, 6}))
	assert.Equal(t, 6, f.Buffered())

	frames := f.Push([]byte{7, 8, 9, 10, 11})
	require.Len(t, frames, 1)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, frames[0])
	assert.Equal(t, 1, f.Buffered())
}

func TestFramerInputAlignedToFrameSize(t *testing.T) {
	f, err := NewFramer(FrameSpec{MaxFrameSize: 4})
	require.NoError(t, err)

	data := testutil.Pattern(12)
	frames := f.Push(data)
	require.Len(t, frames, 3)
	assert.Nil(t, f.Flush(), "no tail when input divides evenly")

	var joined []byte
	for _, frame := range frames {
		assert.Len(t, frame, 4)
		joined = append(joined, frame...)
	}
	assert.Equal(t, data, joined)
}

func TestFramerFramesDoNotAliasBuffer(t *testing.T) {
	f, err := NewFramer(FrameSpec{MaxFrameSize: 2})
	require.NoError(t, err)

	frames := f.Push([]byte{1, 2, 3})
	require.Len(t, frames, 1)

	// Later pushes must not disturb frames already handed out.
	_ = f.Push([]byte{9, 9, 9, 9})
	assert.Equal(t, []byte{1, 2}, frames[0])
}

func TestFramerEmptyPush(t *testing.T) {
	f, err := NewFramer(FrameSpec{MaxFrameSize: 8})
	require.NoError(t, err)

	assert.Nil(t, f.Push(nil))
	assert.Nil(t, f.Flush())
}

func TestFrameSpecValidation(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := NewFramer(FrameSpec{MaxFrameSize: size})
		require.Error(t, err, "size %d", size)
		assert.ErrorIs(t, err, errors.ErrMalformedFrameSpec)
	}
}
