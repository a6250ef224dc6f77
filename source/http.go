package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/pkg/retry"
)

// HTTP streams the body of a GET response in ReadSize chunks. The
// request is issued once at open time; transient failures while
// connecting are retried with exponential backoff, 4xx statuses are
// not.
type HTTP struct {
	body   io.ReadCloser
	buf    []byte
	done   bool
	closed bool
}

// HTTPConfig controls how a URL is fetched.
type HTTPConfig struct {
	URL      string
	ReadSize int           // chunk size, DefaultReadSize when zero
	Timeout  time.Duration // per-request timeout, 30s when zero
	Retry    retry.Config  // zero value uses retry.DefaultConfig
	Client   *http.Client  // optional, defaults to a fresh client
}

// OpenHTTP issues the GET request and returns a source over its body.
func OpenHTTP(ctx context.Context, cfg HTTPConfig) (*HTTP, error) {
	if cfg.URL == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "HTTPSource", "OpenHTTP", "url required")
	}
	if cfg.ReadSize <= 0 {
		cfg.ReadSize = DefaultReadSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.DefaultConfig()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	resp, err := retry.DoWithResult(ctx, cfg.Retry, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
		if err != nil {
			return nil, retry.NonRetryable(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			statusErr := fmt.Errorf("%w: %s", errors.ErrUnexpectedStatus, resp.Status)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, retry.NonRetryable(statusErr)
			}
			return nil, statusErr
		}
		return resp, nil
	})
	if err != nil {
		return nil, errors.WrapTransient(err, "HTTPSource", "OpenHTTP", "fetch")
	}

	return &HTTP{body: resp.Body, buf: make([]byte, cfg.ReadSize)}, nil
}

// Next reads the next chunk of the response body.
func (s *HTTP) Next(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, errors.ErrSourceClosed
	}
	if s.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := s.body.Read(s.buf)
	if n > 0 {
		chunk := make([]byte, n)
		copy(chunk, s.buf[:n])
		return chunk, nil
	}
	if err == io.EOF {
		s.done = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.WrapTransient(err, "HTTPSource", "Next", "read body")
	}
	return nil, nil
}

// Close drains nothing and releases the response body.
func (s *HTTP) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.body.Close(); err != nil {
		return errors.Wrap(err, "HTTPSource", "Close", "close body")
	}
	return nil
}
