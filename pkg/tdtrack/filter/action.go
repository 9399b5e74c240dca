package filter

import (
	"fmt"
	"log/slog"
)

// PayloadPredicate decides whether an action payload should be tracked.
// The payload is whatever the host pipeline attached to the action.
type PayloadPredicate func(payload any) bool

// ActionFunc reports whether an action with the given payload is tracked.
type ActionFunc func(payload any) bool

// Action builds the gate for one action kind (used only in log output).
//
// A nil predicate accepts every payload. A predicate of any other type
// than PayloadPredicate or func(any) bool is logged as a warning and
// also accepts every payload.
func Action(kind string, predicate any, logger *slog.Logger) ActionFunc {
	if logger == nil {
		logger = slog.Default()
	}

	var accept PayloadPredicate
	switch p := predicate.(type) {
	case nil:
	case PayloadPredicate:
		accept = p
	case func(any) bool:
		accept = p
	default:
		logger.Warn("payload filter must be a predicate, ignoring",
			slog.String("kind", kind),
			slog.String("type", fmt.Sprintf("%T", predicate)))
	}

	return func(payload any) bool {
		if accept == nil {
			return true
		}
		return accept(payload)
	}
}
