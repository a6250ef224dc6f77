package source

import (
	"context"
	"io"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
	"github.com/DannyDoesGraphics/DARE-sub000/pkg/retry"
)

// NATS streams asset bytes published to a JetStream consumer. Each
// message payload is one chunk; publishers terminate a stream by
// sending a message with an empty payload, which this source reports
// as io.EOF. Messages are acknowledged after they are handed to the
// caller.
type NATS struct {
	conn     *nats.Conn
	consumer jetstream.Consumer
	cfg      NATSConfig

	pending [][]byte
	done    bool
	closed  bool
}

// NATSConfig controls the JetStream consumer the source pulls from.
type NATSConfig struct {
	URL          string
	Stream       string
	Consumer     string
	FetchBatch   int           // messages per fetch, 16 when zero
	FetchTimeout time.Duration // max wait per fetch, 5s when zero
	Retry        retry.Config  // connect retry, zero value uses retry.DefaultConfig
}

func (cfg *NATSConfig) validate() error {
	if cfg.URL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "NATSSource", "OpenNATS", "url required")
	}
	if cfg.Stream == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "NATSSource", "OpenNATS", "stream required")
	}
	if cfg.Consumer == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "NATSSource", "OpenNATS", "consumer required")
	}
	if cfg.FetchBatch <= 0 {
		cfg.FetchBatch = 16
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 5 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.DefaultConfig()
	}
	return nil
}

// OpenNATS connects to the server and binds the configured consumer.
func OpenNATS(ctx context.Context, cfg NATSConfig) (*NATS, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	conn, err := retry.DoWithResult(ctx, cfg.Retry, func() (*nats.Conn, error) {
		return nats.Connect(cfg.URL)
	})
	if err != nil {
		return nil, errors.WrapTransient(err, "NATSSource", "OpenNATS", "connect")
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "NATSSource", "OpenNATS", "init jetstream")
	}

	consumer, err := js.Consumer(ctx, cfg.Stream, cfg.Consumer)
	if err != nil {
		conn.Close()
		return nil, errors.WrapTransient(err, "NATSSource", "OpenNATS", "bind consumer")
	}

	return &NATS{conn: conn, consumer: consumer, cfg: cfg}, nil
}

// Next returns the next message payload, fetching a batch when the
// local queue is empty.
func (s *NATS) Next(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, errors.ErrSourceClosed
	}

	for {
		if len(s.pending) > 0 {
			chunk := s.pending[0]
			s.pending = s.pending[1:]
			return chunk, nil
		}
		if s.done {
			return nil, io.EOF
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.fetch(); err != nil {
			return nil, err
		}
	}
}

func (s *NATS) fetch() error {
	batch, err := s.consumer.Fetch(s.cfg.FetchBatch, jetstream.FetchMaxWait(s.cfg.FetchTimeout))
	if err != nil {
		return errors.WrapTransient(err, "NATSSource", "Next", "fetch batch")
	}

	got := false
	for msg := range batch.Messages() {
		payload := msg.Data()
		msg.Ack()
		got = true
		if len(payload) == 0 {
			// Empty payload is the publisher's end-of-stream marker.
			s.done = true
			break
		}
		s.pending = append(s.pending, payload)
	}
	if err := batch.Error(); err != nil {
		return errors.WrapTransient(err, "NATSSource", "Next", "drain batch")
	}
	if !got && !s.done {
		return errors.WrapTransient(errors.ErrConnectionTimeout, "NATSSource", "Next", "await messages")
	}
	return nil
}

// Close drains nothing further and drops the connection.
func (s *NATS) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.conn.Close()
	return nil
}
