// Package source provides pull-based byte providers for the streaming
// pipeline.
//
// # Overview
//
// A Source yields a finite sequence of raw byte chunks through Next
// and terminates with io.EOF. Chunk boundaries are an artifact of the
// provider (read size, message framing) and carry no meaning: the
// pipeline's extraction stage produces identical output regardless of
// how the same bytes were chunked.
//
// # Providers
//
//   - Bytes: an in-memory slice, yielded as one piece.
//   - File: a regular file, read in fixed-size chunks from an optional
//     byte offset.
//   - HTTP: the body of a GET response, opened with exponential
//     backoff retry via pkg/retry.
//   - NATS: payloads of a JetStream consumer, terminated by an
//     empty-payload marker message.
//   - WebSocket: binary messages from a websocket endpoint, terminated
//     by a normal close.
//   - Limit: a decorator that throttles any source to a
//     bytes-per-second budget.
//   - Func: an adapter over a plain pull function.
//
// # Errors
//
// Sources classify their failures with the errors package: network
// faults are transient, bad configuration is invalid, and use after
// Close reports errors.ErrSourceClosed. io.EOF is returned bare so
// callers can test for it directly.
package source
