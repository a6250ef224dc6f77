// Package geometry ties the streaming pipeline to asset buffers. A
// Geometry names a buffer, points at its Location (file, URL, memory,
// NATS, websocket), and carries the layout and format parameters the
// pipeline needs. A Loader opens geometries as pipelines, or loads
// them fully into memory, and tracks per-buffer residency
// (unloaded, streaming, resident, failed).
package geometry
