// Package stream implements the demand-driven transformation pipeline
// that turns raw asset bytes into framed, format-converted output.
//
// # Stages
//
// A Pipeline composes three stages over a source.Source:
//
//   - StrideExtractor walks the raw stream with a StrideSpec and
//     collects whole elements, discarding interleaved padding. Output
//     is invariant under re-chunking: the same bytes split differently
//     produce the same elements.
//   - format.ConvertBatch rewrites each batch of extracted elements
//     from the stored format to the target format. Identical formats
//     take a copy fast path.
//   - Framer re-chunks converted bytes into frames of exactly
//     MaxFrameSize, with one undersized frame at the end of stream.
//
// All specs are validated when the pipeline is built; streaming never
// fails on configuration.
//
// # Consumption
//
// Next returns one frame per call and io.EOF after the last. Work is
// pull-driven: the source is read only as far as one frame requires.
// Drain collects everything that remains. Context cancellation during
// Next is retryable; the stream position is preserved.
//
// # End of stream
//
// A stream ending part way through an element is truncated upstream
// data. The default policy drops the partial element silently;
// ErrorOnPartialElement surfaces it as errors.ErrPartialElement. A
// stream ending before StrideSpec.ElementCount elements just yields
// fewer elements.
package stream
