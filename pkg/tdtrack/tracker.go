package tdtrack

import (
	"context"
	"log/slog"
	"maps"
	"math"
	"reflect"

	"github.com/randalmurphal/tdtrack/pkg/tdtrack/backend"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/config"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/location"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/observability"
)

// TrackRequest is one page-view or event to record.
type TrackRequest struct {
	Kind      Kind
	Variables map[string]any
	// EventName is written to the event-name field when non-empty.
	EventName string
	// Location is the page being viewed. Only read for page-views.
	Location any
}

// Tracker composes page-view and event records and hands them to a Dispatcher.
//
// A Tracker is not safe for concurrent use: navigation events are expected
// to arrive one at a time, as they do in a single-page application.
type Tracker struct {
	cfg        config.Config
	env        Environment
	phase      Phase
	nav        NavigationState
	normalize  location.Normalizer
	dispatcher *Dispatcher
	logger     *slog.Logger

	// Output field names, resolved once.
	trackTypeKey string
	referrerKey  string
	locationKey  string
	eventNameKey string

	sendReferrer    bool
	sendLocation    bool
	sendFalsyValues bool
}

// New creates a Tracker. overrides are merged over config.Defaults().
//
// If env.Browser is false the error is logged and the returned tracker is
// inert: every call returns ErrInert and no state is ever touched.
// client may be nil when dryRun is enabled.
func New(env Environment, overrides config.Config, client backend.Client, opts ...Option) *Tracker {
	o := buildOptions(opts)

	if !env.Browser {
		observability.LogInert(o.logger)
		return &Tracker{env: env, phase: PhaseInert, logger: o.logger}
	}

	cfg := config.Merge(config.Defaults(), overrides)
	t := &Tracker{
		cfg:             cfg,
		env:             env,
		phase:           PhaseUninitialized,
		normalize:       location.NewNormalizer(cfg.URLFormat(), env.Origin()),
		dispatcher:      NewDispatcher(cfg, client, opts...),
		logger:          o.logger,
		trackTypeKey:    cfg.String(config.KeyTrackTypeKey, "trackType"),
		referrerKey:     cfg.String(config.KeyReferrerKey, "referrer"),
		locationKey:     cfg.String(config.KeyLocationKey, "location"),
		eventNameKey:    cfg.String(config.KeyEventNameKey, "event"),
		sendReferrer:    cfg.Bool(config.KeySendReferrer, false),
		sendLocation:    cfg.Bool(config.KeySendLocation, false),
		sendFalsyValues: cfg.Bool(config.KeySendFalsyValues, false),
	}

	observability.LogConfig(t.logger, t.dispatcher.DryRun(),
		cfg.String(config.KeyPageViewTable, ""), cfg.String(config.KeyEventTable, ""), cfg)
	return t
}

// Config returns the merged configuration. It is empty for an inert tracker.
func (t *Tracker) Config() config.Config {
	return t.cfg
}

// Phase returns the tracking phase.
func (t *Tracker) Phase() Phase {
	return t.phase
}

// State returns a copy of the navigation state.
func (t *Tracker) State() NavigationState {
	return t.nav
}

// SendPageView records a visit to loc. A nil loc after the first page-view
// keeps the current location, which suits virtual page transitions.
func (t *Tracker) SendPageView(ctx context.Context, loc any, vars map[string]any) (Outcome, error) {
	return t.Track(ctx, TrackRequest{Kind: KindPageView, Location: loc, Variables: vars})
}

// SendEvent records a custom event named eventName.
func (t *Tracker) SendEvent(ctx context.Context, eventName string, vars map[string]any) (Outcome, error) {
	return t.Track(ctx, TrackRequest{Kind: KindEvent, EventName: eventName, Variables: vars})
}

// Track updates navigation state for page-views, composes the record, and
// submits it. The state change happens before the submission starts.
func (t *Tracker) Track(ctx context.Context, req TrackRequest) (Outcome, error) {
	if t.phase == PhaseInert {
		return Outcome{}, ErrInert
	}

	if req.Kind == KindPageView {
		t.advance(req.Location)
	}
	record := t.compose(req)

	outcome, err := t.dispatcher.Submit(ctx, req.Kind, record)
	if err != nil {
		return Outcome{}, err
	}
	observability.LogTracked(t.logger, string(req.Kind), req.EventName, outcome.DryRun, record)
	return outcome, nil
}

// advance applies a page-view to the navigation state.
func (t *Tracker) advance(loc any) {
	if t.phase == PhaseUninitialized {
		t.nav.firstPage(loc, t.env.Referrer)
		t.phase = PhaseTracking
		return
	}
	t.nav.pageChanged(loc)
}

// compose builds the outbound record. Later fields overwrite earlier ones
// when configured keys collide.
func (t *Tracker) compose(req TrackRequest) backend.Record {
	record := backend.Record(maps.Clone(req.Variables))
	if record == nil {
		record = backend.Record{}
	}

	record[t.trackTypeKey] = string(req.Kind)
	if req.Kind == KindPageView {
		if t.sendReferrer {
			record[t.referrerKey] = t.normalize(t.nav.Referrer)
		}
		if t.sendLocation {
			record[t.locationKey] = t.normalize(t.nav.Current)
		}
	}
	if req.EventName != "" {
		record[t.eventNameKey] = req.EventName
	}

	if !t.sendFalsyValues {
		maps.DeleteFunc(record, func(_ string, v any) bool { return isFalsy(v) })
	}
	return record
}

// isFalsy reports whether v counts as empty: nil, false, "", a numeric zero,
// NaN, or a nil pointer, map, slice, func, or channel.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
