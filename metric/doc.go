// Package metric provides Prometheus metrics for the streaming engine.
//
// A MetricsRegistry owns an isolated Prometheus registry with the core
// pipeline metrics (throughput per stage, pull latency, error counts)
// and the Go runtime collectors pre-registered. Components register
// additional collectors under a component.metric key so duplicate
// registrations are caught early.
//
// Metrics are optional throughout the engine: a nil *MetricsRegistry
// disables instrumentation without any conditional call sites, because
// consumers hold their own nil-safe recording wrappers.
//
// Server exposes the registry over HTTP for scraping, plus a /health
// endpoint.
package metric
