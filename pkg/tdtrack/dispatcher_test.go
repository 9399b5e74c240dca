package tdtrack_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randalmurphal/tdtrack/pkg/tdtrack"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/backend"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/config"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// spyClient counts calls per method and answers synchronously.
type spyClient struct {
	addRecord  atomic.Int32
	trackEvent atomic.Int32
	silent     bool
}

func (s *spyClient) AddRecord(table string, _ backend.Record, onSuccess func(backend.Receipt), _ func(error)) {
	s.addRecord.Add(1)
	if !s.silent {
		onSuccess(backend.Receipt{ID: "add", Table: table, Method: backend.MethodAddRecord})
	}
}

func (s *spyClient) TrackEvent(table string, _ backend.Record, onSuccess func(backend.Receipt), _ func(error)) {
	s.trackEvent.Add(1)
	if !s.silent {
		onSuccess(backend.Receipt{ID: "track", Table: table, Method: backend.MethodTrackEvent})
	}
}

func mergedConfig(overrides map[string]any) config.Config {
	return config.Merge(config.Defaults(), config.New(overrides))
}

// recordingMetrics keeps the last submission it saw.
type recordingMetrics struct {
	observability.NoopMetrics
	calls  int
	kind   string
	method string
	dryRun bool
	err    error
}

func (m *recordingMetrics) RecordSubmission(_ context.Context, kind, method string, dryRun bool, _ time.Duration, err error) {
	m.calls++
	m.kind, m.method, m.dryRun, m.err = kind, method, dryRun, err
}

// TestDispatcher_DryRun verifies no backend method is invoked.
func TestDispatcher_DryRun(t *testing.T) {
	spy := &spyClient{}
	metrics := &recordingMetrics{}
	d := tdtrack.NewDispatcher(mergedConfig(map[string]any{"dryRun": true}), spy, tdtrack.WithMetrics(metrics))

	outcome, err := d.Submit(context.Background(), tdtrack.KindPageView, backend.Record{"a": "b"})

	require.NoError(t, err)
	assert.Equal(t, tdtrack.Outcome{DryRun: true}, outcome)
	assert.Zero(t, spy.addRecord.Load())
	assert.Zero(t, spy.trackEvent.Load())
	assert.True(t, metrics.dryRun)
}

// TestDispatcher_Method verifies sendTdValues selects the backend method.
func TestDispatcher_Method(t *testing.T) {
	tests := []struct {
		name         string
		sendTdValues bool
		wantAdd      int32
		wantTrack    int32
	}{
		{"raw insert", false, 1, 0},
		{"implicit fields", true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &spyClient{}
			d := tdtrack.NewDispatcher(mergedConfig(map[string]any{"sendTdValues": tt.sendTdValues}), spy)

			_, err := d.Submit(context.Background(), tdtrack.KindEvent, backend.Record{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdd, spy.addRecord.Load())
			assert.Equal(t, tt.wantTrack, spy.trackEvent.Load())
		})
	}
}

// TestDispatcher_Table verifies table resolution per kind.
func TestDispatcher_Table(t *testing.T) {
	d := tdtrack.NewDispatcher(mergedConfig(map[string]any{
		"pageViewTable": "views",
		"eventTable":    "",
	}), &spyClient{})

	table, err := d.Table(tdtrack.KindPageView)
	require.NoError(t, err)
	assert.Equal(t, "views", table)

	_, err = d.Table(tdtrack.KindEvent)
	assert.ErrorIs(t, err, tdtrack.ErrTableNotConfigured)

	_, err = d.Table(tdtrack.Kind("purchase"))
	assert.ErrorIs(t, err, tdtrack.ErrTableNotConfigured)
}

// TestDispatcher_RoutesToTable verifies the resolved table reaches the backend.
func TestDispatcher_RoutesToTable(t *testing.T) {
	spy := &spyClient{}
	d := tdtrack.NewDispatcher(mergedConfig(map[string]any{"eventTable": "clicks"}), spy)

	outcome, err := d.Submit(context.Background(), tdtrack.KindEvent, backend.Record{})
	require.NoError(t, err)
	assert.Equal(t, "clicks", outcome.Receipt.Table)
}

// TestDispatcher_NoClient verifies a nil client fails outside dry-run mode.
func TestDispatcher_NoClient(t *testing.T) {
	d := tdtrack.NewDispatcher(mergedConfig(nil), nil)

	_, err := d.Submit(context.Background(), tdtrack.KindEvent, backend.Record{})
	assert.ErrorIs(t, err, tdtrack.ErrNoClient)
}

// TestDispatcher_ContextCancelled verifies the waiter returns when the backend never answers.
func TestDispatcher_ContextCancelled(t *testing.T) {
	spy := &spyClient{silent: true}
	d := tdtrack.NewDispatcher(mergedConfig(nil), spy)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := d.Submit(ctx, tdtrack.KindEvent, backend.Record{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), spy.addRecord.Load())
}

// TestDispatcher_Observability verifies spans and metrics for real submissions.
func TestDispatcher_Observability(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	metrics := &recordingMetrics{}
	d := tdtrack.NewDispatcher(mergedConfig(map[string]any{"pageViewTable": ""}), &spyClient{},
		tdtrack.WithMetrics(metrics),
		tdtrack.WithSpanManager(observability.NewSpanManagerFromProvider(tp)),
	)

	_, err := d.Submit(context.Background(), tdtrack.KindEvent, backend.Record{})
	require.NoError(t, err)
	_, err = d.Submit(context.Background(), tdtrack.KindPageView, backend.Record{})
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "tdtrack.submit", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)

	assert.Equal(t, 2, metrics.calls)
	assert.Equal(t, "pageview", metrics.kind)
	assert.Equal(t, "addRecord", metrics.method)
	assert.ErrorIs(t, metrics.err, tdtrack.ErrTableNotConfigured)
}
