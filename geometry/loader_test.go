package geometry

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/format"
	"github.com/DannyDoesGraphics/DARE-sub000/metric"
	"github.com/DannyDoesGraphics/DARE-sub000/testutil"
)

func TestLoaderLoadFromMemory(t *testing.T) {
	data := testutil.Pattern(64)
	g := Geometry{
		Name:     "indices",
		Location: MemoryLocation{Data: data},
		Stored:   testFormat(t, format.U16, 1),
		Target:   testFormat(t, format.U32, 1),
	}

	loader := NewLoader()
	assert.Equal(t, StateUnloaded, loader.State("indices"))

	out, err := loader.Load(context.Background(), g)
	require.NoError(t, err)

	want, err := format.ConvertBatch(data, g.Stored, g.Target)
	require.NoError(t, err)
	assert.Equal(t, want, out)
	assert.Equal(t, StateResident, loader.State("indices"))
}

func TestLoaderOffsetEquivalence(t *testing.T) {
	// The same geometry must produce identical bytes whether the
	// offset is consumed by a file seek or by the stride walk over an
	// unseekable stream.
	data := testutil.Pattern(256)
	path := filepath.Join(t.TempDir(), "buffer.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	base := Geometry{
		Name:   "positions",
		Stored: testFormat(t, format.F32, 1),
		Target: testFormat(t, format.F32, 1),
		Offset: 16,
		Stride: 8,
	}

	loader := NewLoader()

	fromFile := base
	fromFile.Location = FileLocation{Path: path, ReadSize: 32}
	fileOut, err := loader.Load(context.Background(), fromFile)
	require.NoError(t, err)

	fromMemory := base
	fromMemory.Location = MemoryLocation{Data: data}
	memOut, err := loader.Load(context.Background(), fromMemory)
	require.NoError(t, err)

	require.NotEmpty(t, fileOut)
	assert.Equal(t, fileOut, memOut)
}

func TestLoaderStreamManualDrive(t *testing.T) {
	g := Geometry{
		Name:      "normals",
		Location:  MemoryLocation{Data: testutil.Pattern(120)},
		Stored:    testFormat(t, format.U8, 4),
		Target:    testFormat(t, format.U8, 4),
		FrameSize: 50,
	}

	loader := NewLoader()
	p, err := loader.Stream(context.Background(), g)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, StateStreaming, loader.State("normals"))

	ctx := context.Background()
	var total int
	for {
		frame, err := p.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		total += len(frame)
	}
	assert.Equal(t, 120, total)

	loader.Finish("normals", nil)
	assert.Equal(t, StateResident, loader.State("normals"))
}

func TestLoaderOpenFailureMarksFailed(t *testing.T) {
	g := Geometry{
		Name:     "missing",
		Location: FileLocation{Path: filepath.Join(t.TempDir(), "nope.bin")},
		Stored:   testFormat(t, format.U8, 1),
		Target:   testFormat(t, format.U8, 1),
	}

	loader := NewLoader()
	_, err := loader.Load(context.Background(), g)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, StateFailed, loader.State("missing"))
}

func TestLoaderInvalidGeometryMarksFailed(t *testing.T) {
	g := validGeometry(t)
	g.Stride = 4 // smaller than the stored element

	loader := NewLoader()
	_, err := loader.Stream(context.Background(), g)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedStrideSpec)
	assert.Equal(t, StateFailed, loader.State(g.Name))
}

func TestLoaderFinishWithError(t *testing.T) {
	loader := NewLoader()
	loader.Finish("broken", errors.ErrConnectionLost)
	assert.Equal(t, StateFailed, loader.State("broken"))
}

func TestLoaderRateLimitPreservesBytes(t *testing.T) {
	g := validGeometry(t)
	want, err := NewLoader().Load(context.Background(), g)
	require.NoError(t, err)

	got, err := NewLoader(WithRateLimit(1 << 30)).Load(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoaderWithMetrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	loader := NewLoader(WithMetrics(registry))

	g := validGeometry(t)
	_, err := loader.Load(context.Background(), g)
	require.NoError(t, err)

	// One successful pipeline recorded under the memory backend.
	count, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, count)
}
