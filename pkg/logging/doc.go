// Package logging provides structured logging utilities for the ohai collector.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults:
// JSON records on stderr, module/version attributes on every record, and source
// locations when running at debug level.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: probe output, merge and deduplication decisions, with source location
//   - INFO: detection outcome and collection summary (default)
//   - WARN/WARNING: degraded runs (missing commands, unreachable metadata service)
//   - ERROR: failures that abort the run
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("ohai", version)
//	    slog.Info("collecting", "provider", "openstack")
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("ohai", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no explicit level
// is passed:
//
//	LOG_LEVEL=debug ohai collect
package logging
