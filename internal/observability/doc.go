// Package observability groups the service's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog construction and per-request logger propagation
//   - metrics: Prometheus collectors for HTTP traffic, storage and blog activity
//   - tracing: OpenTelemetry provider setup and the HTTP tracing middleware
package observability
