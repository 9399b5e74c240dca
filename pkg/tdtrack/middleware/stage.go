package middleware

import (
	"context"
	"log/slog"
	"maps"

	"github.com/randalmurphal/tdtrack/pkg/tdtrack"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/filter"
	"github.com/randalmurphal/tdtrack/pkg/tdtrack/observability"
)

// Sender is the tracker capability the stage drives.
// *tdtrack.Tracker implements it.
type Sender interface {
	SendPageView(ctx context.Context, loc any, vars map[string]any) (tdtrack.Outcome, error)
	SendEvent(ctx context.Context, eventName string, vars map[string]any) (tdtrack.Outcome, error)
}

// Stage is the tracking step of a pipeline.
type Stage struct {
	sender         Sender
	browser        bool
	filterVars     filter.VariablesFunc
	acceptPageView filter.ActionFunc
	acceptEvent    filter.ActionFunc
	onError        func(Action, error)
	exposeSender   bool

	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// Option configures a Stage.
type Option func(*stageConfig)

type stageConfig struct {
	variablesFilter any
	pageViewFilter  any
	eventFilter     any
	onError         func(Action, error)
	expose          bool
	logger          *slog.Logger
	metrics         observability.MetricsRecorder
}

// WithVariablesFilter sets the projection applied to payload variables:
// a filter.Predicate or a []string allow-list. See filter.Variables.
func WithVariablesFilter(spec any) Option {
	return func(c *stageConfig) { c.variablesFilter = spec }
}

// WithPageViewFilter gates ActionSendPageView with a filter.PayloadPredicate.
// The predicate receives the action's Payload.
func WithPageViewFilter(predicate any) Option {
	return func(c *stageConfig) { c.pageViewFilter = predicate }
}

// WithEventFilter gates ActionSendEvent with a filter.PayloadPredicate.
// The predicate receives the action's Payload.
func WithEventFilter(predicate any) Option {
	return func(c *stageConfig) { c.eventFilter = predicate }
}

// WithOnError is called with every action whose submission failed.
func WithOnError(fn func(Action, error)) Option {
	return func(c *stageConfig) { c.onError = fn }
}

// WithExposeTracker keeps the sender reachable through Stage.Tracker,
// for inspection while debugging.
func WithExposeTracker() Option {
	return func(c *stageConfig) { c.expose = true }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *stageConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. Default: observability.NoopMetrics{}.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *stageConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// NewStage creates the tracking stage for sender.
//
// When env.Browser is false the stage only forwards actions and logs a
// warning for each one.
func NewStage(sender Sender, env tdtrack.Environment, opts ...Option) *Stage {
	c := stageConfig{
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(&c)
	}

	return &Stage{
		sender:         sender,
		browser:        env.Browser,
		filterVars:     filter.Variables(c.variablesFilter, c.logger),
		acceptPageView: filter.Action(string(tdtrack.KindPageView), c.pageViewFilter, c.logger),
		acceptEvent:    filter.Action(string(tdtrack.KindEvent), c.eventFilter, c.logger),
		onError:        c.onError,
		exposeSender:   c.expose,
		logger:         c.logger,
		metrics:        c.metrics,
	}
}

// New returns the tracking stage as a Middleware.
func New(sender Sender, env tdtrack.Environment, opts ...Option) Middleware {
	return NewStage(sender, env, opts...).Middleware
}

// Tracker returns the sender when WithExposeTracker was given, else nil.
func (s *Stage) Tracker() Sender {
	if !s.exposeSender {
		return nil
	}
	return s.sender
}

// Middleware wraps next with tracking.
//
// The returned Handler waits for the backend to acknowledge a tracking
// action, or for ctx to end, before it calls next. Hosts that must not
// wait should pass a context with a deadline.
func (s *Stage) Middleware(next Handler) Handler {
	if !s.browser {
		return func(ctx context.Context, action Action) error {
			observability.LogServerSide(s.logger, action.Type)
			return next(ctx, action)
		}
	}
	return func(ctx context.Context, action Action) error {
		s.Handle(ctx, action)
		return next(ctx, action)
	}
}

// Handle sends the record for a tracking action. It reports whether a
// submission was attempted. Submission errors go to the logger and the
// WithOnError hook; they never stop the pipeline.
func (s *Stage) Handle(ctx context.Context, action Action) bool {
	p := action.Payload

	var err error
	switch action.Type {
	case ActionSendPageView:
		if !s.acceptPageView(p) {
			s.metrics.RecordAction(ctx, action.Type, false)
			return false
		}
		_, err = s.sender.SendPageView(ctx, p.Location, s.filterVars(p.Variables))
	case ActionSendEvent:
		if !s.acceptEvent(p) {
			s.metrics.RecordAction(ctx, action.Type, false)
			return false
		}
		_, err = s.sender.SendEvent(ctx, p.EventName, s.filterVars(p.Variables))
	case ActionFallbackPageView:
		vars := maps.Clone(s.filterVars(p.Variables))
		if vars == nil {
			vars = make(map[string]any, 1)
		}
		vars[FallbackKey] = true
		_, err = s.sender.SendPageView(ctx, p.Location, vars)
	default:
		return false
	}

	s.metrics.RecordAction(ctx, action.Type, true)
	if err != nil {
		s.logger.Warn("tracking action failed",
			slog.String("action", action.Type),
			slog.String("error", err.Error()),
		)
		if s.onError != nil {
			s.onError(action, err)
		}
	}
	return true
}
