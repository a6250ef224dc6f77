package source

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

func TestBytesYieldsOnceThenEOF(t *testing.T) {
	ctx := context.Background()
	src := NewBytes([]byte{1, 2, 3})

	chunk, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, chunk)

	_, err = src.Next(ctx)
	assert.Equal(t, io.EOF, err)

	_, err = src.Next(ctx)
	assert.Equal(t, io.EOF, err, "EOF must be sticky")
}

func TestBytesEmptySliceIsImmediateEOF(t *testing.T) {
	src := NewBytes(nil)
	_, err := src.Next(context.Background())
	assert.Equal(t, io.EOF, err)
}

func TestBytesUseAfterClose(t *testing.T) {
	src := NewBytes([]byte{1})
	require.NoError(t, src.Close())

	_, err := src.Next(context.Background())
	assert.ErrorIs(t, err, errors.ErrSourceClosed)
}

func TestFuncAdapter(t *testing.T) {
	calls := 0
	closed := false
	src := &Func{
		NextFunc: func(context.Context) ([]byte, error) {
			calls++
			if calls > 2 {
				return nil, io.EOF
			}
			return []byte{byte(calls)}, nil
		},
		CloseFunc: func() error {
			closed = true
			return nil
		},
	}

	ctx := context.Background()
	first, err := src.Next(ctx)
	require.NoError(t, err)
	second, err := src.Next(ctx)
	require.NoError(t, err)
	_, err = src.Next(ctx)
	assert.Equal(t, io.EOF, err)

	assert.Equal(t, []byte{1}, first)
	assert.Equal(t, []byte{2}, second)

	require.NoError(t, src.Close())
	assert.True(t, closed)
}

func TestFuncZeroValueIsEmptyStream(t *testing.T) {
	var src Func
	_, err := src.Next(context.Background())
	assert.Equal(t, io.EOF, err)
	assert.NoError(t, src.Close())
}
