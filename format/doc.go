// Package format models element encodings and performs numeric format
// conversion for the asset streaming engine.
//
// # Overview
//
// A Format pairs one of six scalar bases (U8, U16, U32, U64, F32, F64)
// with a component count, describing one element of typed data such as a
// vertex position (f32x3) or an index (u16). All scalars are unsigned
// integers or IEEE-754 floats, little-endian on the wire.
//
// # Conversion
//
// Three layers of conversion build on each other:
//
//   - ConvertScalar: one scalar between any two bases. The full 6x6
//     matrix is dispatched explicitly; narrowing integer conversions
//     saturate, float-to-integer conversions round to nearest then
//     saturate with NaN mapping to zero.
//   - ConvertElement: one element between two Formats, matching
//     component slots, truncating extra source components and
//     zero-filling extra target components.
//   - ConvertBatch: a tightly packed run of elements, in order, with a
//     copy fast path when the formats are identical.
//
// All conversion functions are pure and safe for concurrent use.
//
// # Errors
//
// Unknown base pairs report errors.ErrUnsupportedConversion; buffers
// that are not whole multiples of the element size report
// errors.ErrElementMisaligned. Both classify as Invalid.
package format
