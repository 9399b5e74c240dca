package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records tdtrack metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordSubmission records one dispatched record with its latency and outcome.
	// method is empty for dry-run submissions.
	RecordSubmission(ctx context.Context, kind, method string, dryRun bool, duration time.Duration, err error)

	// RecordAction records an action seen by the middleware stage and whether it was tracked.
	RecordAction(ctx context.Context, actionType string, tracked bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	submissions       metric.Int64Counter
	submissionErrors  metric.Int64Counter
	submissionLatency metric.Float64Histogram
	actions           metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily creates the shared instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("tdtrack")

	submissions, err := meter.Int64Counter("tdtrack.submissions",
		metric.WithDescription("Number of records dispatched"),
	)
	if err != nil {
		return nil, err
	}

	submissionErrors, err := meter.Int64Counter("tdtrack.submission.errors",
		metric.WithDescription("Number of failed record submissions"),
	)
	if err != nil {
		return nil, err
	}

	submissionLatency, err := meter.Float64Histogram("tdtrack.submission.latency_ms",
		metric.WithDescription("Record submission latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	actions, err := meter.Int64Counter("tdtrack.actions",
		metric.WithDescription("Number of actions seen by the tracking middleware"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		submissions:       submissions,
		submissionErrors:  submissionErrors,
		submissionLatency: submissionLatency,
		actions:           actions,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordSubmission records a submission.
func (m *otelMetrics) RecordSubmission(ctx context.Context, kind, method string, dryRun bool, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("method", method),
		attribute.Bool("dry_run", dryRun),
	)

	m.submissions.Add(ctx, 1, attrs)
	m.submissionLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		m.submissionErrors.Add(ctx, 1, attrs)
	}
}

// RecordAction records an action.
func (m *otelMetrics) RecordAction(ctx context.Context, actionType string, tracked bool) {
	m.actions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", actionType),
		attribute.Bool("tracked", tracked),
	))
}
