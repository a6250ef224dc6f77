package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/pkg/retry"
	"github.com/DannyDoesGraphics/DARE-sub000/testutil"
)

func fastRetry(attempts int) retry.Config {
	return retry.Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestHTTPStreamsResponseBody(t *testing.T) {
	data := testutil.Pattern(5000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	src, err := OpenHTTP(context.Background(), HTTPConfig{URL: srv.URL, ReadSize: 512})
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, data, drainSource(t, src))
}

func TestHTTPRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ready"))
	}))
	defer srv.Close()

	src, err := OpenHTTP(context.Background(), HTTPConfig{URL: srv.URL, Retry: fastRetry(5)})
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []byte("ready"), drainSource(t, src))
	assert.Equal(t, int32(3), hits.Load())
}

func TestHTTPDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := OpenHTTP(context.Background(), HTTPConfig{URL: srv.URL, Retry: fastRetry(5)})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnexpectedStatus)
	assert.Equal(t, int32(1), hits.Load(), "4xx must fail immediately")
}

func TestHTTPMissingURL(t *testing.T) {
	_, err := OpenHTTP(context.Background(), HTTPConfig{})
	assert.ErrorIs(t, err, errors.ErrMissingConfig)
}

func TestHTTPUseAfterClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("abc"))
	}))
	defer srv.Close()

	src, err := OpenHTTP(context.Background(), HTTPConfig{URL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, src.Close())

	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, errors.ErrSourceClosed)
}
