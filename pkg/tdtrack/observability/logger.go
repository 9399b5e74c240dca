// Package observability provides logging, metrics, and tracing for tdtrack.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Metrics and tracing have no-op implementations for when they are disabled.
package observability

import (
	"log/slog"
	"time"
)

// LogConfig logs the effective tracker configuration at debug level.
// cfg is logged through its slog.LogValuer when it has one.
func LogConfig(logger *slog.Logger, dryRun bool, pageViewTable, eventTable string, cfg any) {
	if logger == nil {
		return
	}
	if dryRun {
		logger.Debug("working in dry-run mode, records will not be sent")
	}
	logger.Debug("tracker configured",
		slog.String("pageview_table", pageViewTable),
		slog.String("event_table", eventTable),
		slog.Any("config", cfg),
	)
}

// LogInert logs that the tracker is disabled for its lifetime.
func LogInert(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Error("tracker requires a browser environment, all tracking is disabled")
}

// LogServerSide logs an action passing through a stage that cannot track.
func LogServerSide(logger *slog.Logger, actionType string) {
	if logger == nil {
		return
	}
	logger.Warn("tracking middleware does not work outside a browser environment",
		slog.String("action", actionType),
	)
}

// LogTracked logs a composed record after submission.
func LogTracked(logger *slog.Logger, kind, eventName string, dryRun bool, record map[string]any) {
	if logger == nil {
		return
	}
	mode := "tracked"
	if dryRun {
		mode = "dry-run"
	}
	attrs := []any{
		slog.String("kind", kind),
		slog.String("mode", mode),
		slog.Any("variables", record),
	}
	if eventName != "" {
		attrs = append(attrs, slog.String("event_name", eventName))
	}
	logger.Debug("record submitted", attrs...)
}

// LogSubmitError logs a failed submission.
func LogSubmitError(logger *slog.Logger, kind, table string, err error, record map[string]any) {
	if logger == nil {
		return
	}
	logger.Error("failed to send record to the backend",
		slog.String("kind", kind),
		slog.String("table", table),
		slog.String("error", err.Error()),
		slog.Any("variables", record),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
