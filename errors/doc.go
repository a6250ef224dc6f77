// Package errors provides standardized error handling patterns for the
// asset streaming engine.
//
// # Overview
//
// The package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input or specification,
// non-retryable), and Fatal (unrecoverable, stop processing).
//
// Classification lets source collaborators make retry decisions without
// string matching, and lets the pipeline distinguish construction-time
// specification failures from mid-stream I/O failures.
//
// # Error Taxonomy
//
// Three groups of standard variables cover the engine's failure surface:
//
//   - Specification errors (ErrMalformedStrideSpec, ErrMalformedFrameSpec,
//     ErrMalformedFormat): raised eagerly when a pipeline is constructed,
//     never while streaming. Always Invalid.
//   - Conversion errors (ErrUnsupportedConversion, ErrElementMisaligned):
//     contract violations between pipeline stages. Always Invalid.
//   - Source errors (ErrConnectionLost, ErrConnectionTimeout, ...): I/O
//     failures from file, HTTP, NATS or WebSocket collaborators. These
//     propagate verbatim through the pipeline and terminate the stream;
//     retry, if desired, happens inside the collaborator before bytes
//     enter the pipeline.
//
// # Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Use the classification-aware wrappers:
//
//	errors.WrapInvalid(err, "StrideSpec", "Validate", "stride below element size")
//	errors.WrapTransient(err, "HTTPSource", "Next", "read body")
//
// The generic Wrap() adds context without fixing a class. All wrapped
// errors remain compatible with errors.Is and errors.As.
package errors
