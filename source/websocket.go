package source

import (
	"context"
	"io"
	"time"

	"github.com/gorilla/websocket"

	"github.com/DannyDoesGraphics/DARE-sub000/errors"
)

// WebSocket streams binary messages from a websocket endpoint. Each
// binary message is one chunk; text and control messages are skipped.
// A normal close from the peer is reported as io.EOF, any other close
// code as a connection error.
type WebSocket struct {
	conn   *websocket.Conn
	done   bool
	closed bool
}

// WebSocketConfig controls the websocket dial.
type WebSocketConfig struct {
	URL              string
	HandshakeTimeout time.Duration // 10s when zero
}

// OpenWebSocket dials the endpoint and returns a source over its
// binary messages.
func OpenWebSocket(ctx context.Context, cfg WebSocketConfig) (*WebSocket, error) {
	if cfg.URL == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "WebSocketSource", "OpenWebSocket", "url required")
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, errors.WrapTransient(err, "WebSocketSource", "OpenWebSocket", "dial")
	}
	return &WebSocket{conn: conn}, nil
}

// Next returns the next binary message.
func (s *WebSocket) Next(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, errors.ErrSourceClosed
	}
	if s.done {
		return nil, io.EOF
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if deadline, ok := ctx.Deadline(); ok {
			_ = s.conn.SetReadDeadline(deadline)
		}

		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.done = true
				return nil, io.EOF
			}
			return nil, errors.WrapTransient(err, "WebSocketSource", "Next", "read message")
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		return data, nil
	}
}

// Close sends a close frame and drops the connection.
func (s *WebSocket) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	deadline := time.Now().Add(time.Second)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	if err := s.conn.Close(); err != nil {
		return errors.Wrap(err, "WebSocketSource", "Close", "close connection")
	}
	return nil
}
