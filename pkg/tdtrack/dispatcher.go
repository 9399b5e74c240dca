package tdtrack

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/tdtrack/pkg/tdtrack/backend"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/config"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/observability"
	"go.opentelemetry.io/otel/attribute"
)

// Outcome is the result of a submission.
type Outcome struct {
	// DryRun is true when nothing was sent.
	DryRun bool
	// Receipt is the backend's acknowledgement. Zero for dry runs.
	Receipt backend.Receipt
}

// Dispatcher routes composed records to a table and backend method.
type Dispatcher struct {
	client        backend.Client
	dryRun        bool
	sendTdValues  bool
	pageViewTable string
	eventTable    string

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// NewDispatcher creates a Dispatcher from an already merged configuration.
// client may be nil when cfg enables dryRun.
func NewDispatcher(cfg config.Config, client backend.Client, opts ...Option) *Dispatcher {
	o := buildOptions(opts)
	return &Dispatcher{
		client:        client,
		dryRun:        cfg.Bool(config.KeyDryRun, false),
		sendTdValues:  cfg.Bool(config.KeySendTdValues, false),
		pageViewTable: cfg.String(config.KeyPageViewTable, ""),
		eventTable:    cfg.String(config.KeyEventTable, ""),
		logger:        o.logger,
		metrics:       o.metrics,
		spans:         o.spans,
	}
}

// DryRun reports whether submissions are short-circuited.
func (d *Dispatcher) DryRun() bool {
	return d.dryRun
}

// Table resolves the destination table for kind.
func (d *Dispatcher) Table(kind Kind) (string, error) {
	var table, key string
	switch kind {
	case KindPageView:
		table, key = d.pageViewTable, config.KeyPageViewTable
	case KindEvent:
		table, key = d.eventTable, config.KeyEventTable
	default:
		return "", &ConfigError{Kind: kind, Key: "kind", Err: ErrTableNotConfigured}
	}
	if table == "" {
		return "", &ConfigError{Kind: kind, Key: key, Err: ErrTableNotConfigured}
	}
	return table, nil
}

// Method returns the backend method records are sent through.
func (d *Dispatcher) Method() backend.Method {
	if d.sendTdValues {
		return backend.MethodTrackEvent
	}
	return backend.MethodAddRecord
}

// Submit sends record as a kind record and waits for the backend.
//
// In dry-run mode it returns Outcome{DryRun: true} without touching the
// backend. Backend failures are logged and returned as *SubmitError; they
// are never retried.
func (d *Dispatcher) Submit(ctx context.Context, kind Kind, record backend.Record) (Outcome, error) {
	elapsed := observability.TimedOperation()

	if d.dryRun {
		d.metrics.RecordSubmission(ctx, string(kind), "", true, elapsed(), nil)
		return Outcome{DryRun: true}, nil
	}

	ctx, span := d.spans.StartSubmitSpan(ctx, string(kind))
	outcome, table, err := d.send(ctx, kind, record)
	if table != "" {
		span.SetAttributes(
			attribute.String("record.table", table),
			attribute.String("record.method", string(d.Method())),
		)
	}
	d.spans.EndSpanWithError(span, err)
	d.metrics.RecordSubmission(ctx, string(kind), string(d.Method()), false, elapsed(), err)

	if err != nil {
		observability.LogSubmitError(d.logger, string(kind), table, err, record)
		return Outcome{}, err
	}
	return outcome, nil
}

func (d *Dispatcher) send(ctx context.Context, kind Kind, record backend.Record) (Outcome, string, error) {
	table, err := d.Table(kind)
	if err != nil {
		return Outcome{}, "", err
	}
	if d.client == nil {
		return Outcome{}, table, &ConfigError{Kind: kind, Key: config.KeyBackend, Err: ErrNoClient}
	}

	method := d.Method()
	receipt, err := backend.Submit(ctx, d.client, method, table, record)
	if err != nil {
		return Outcome{}, table, &SubmitError{Kind: kind, Table: table, Method: string(method), Err: err}
	}
	return Outcome{Receipt: receipt}, table, nil
}
