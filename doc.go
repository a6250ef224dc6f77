// Package darestream is a streaming engine for GPU asset buffers. It
// pulls raw strided bytes from files, URLs, brokers, or memory,
// extracts the typed elements of one attribute, converts them between
// numeric formats, and delivers the result in fixed-size frames.
//
// The packages compose bottom-up:
//
//   - format: element formats and the scalar conversion matrix
//   - source: pull-based byte providers over files, HTTP, NATS,
//     websockets, and memory
//   - stream: the stride extractor, format converter, and framer
//     behind the demand-driven Pipeline
//   - geometry: asset buffer descriptors, locations, and the Loader
//     with residency tracking
//   - config, errors, metric: the shared configuration, error
//     classification, and Prometheus surfaces
//
// The darestream command (cmd/darestream) repacks buffers from the
// command line, singly or from a YAML manifest.
package darestream
