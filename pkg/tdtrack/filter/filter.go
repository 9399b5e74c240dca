// Package filter decides which variables and which actions reach the tracker.
package filter

import (
	"fmt"
	"log/slog"
	"slices"
)

// Predicate accepts or rejects a single variable.
type Predicate func(key string, value any) bool

// VariablesFunc projects a variable map.
type VariablesFunc func(vars map[string]any) map[string]any

// Variables builds a projection from spec.
//
// spec may be:
//   - nil: variables pass through unchanged
//   - Predicate or func(string, any) bool: keep entries the predicate accepts
//   - []string: keep entries whose key is listed
//
// Any other spec is logged as a warning and treated like nil.
// A nil logger uses slog.Default().
func Variables(spec any, logger *slog.Logger) VariablesFunc {
	if logger == nil {
		logger = slog.Default()
	}

	var keep Predicate
	switch s := spec.(type) {
	case nil:
	case Predicate:
		keep = s
	case func(string, any) bool:
		keep = s
	case []string:
		allowed := slices.Clone(s)
		keep = func(key string, _ any) bool {
			return slices.Contains(allowed, key)
		}
	default:
		logger.Warn("variables filter must be a predicate or a key list, ignoring",
			slog.String("type", fmt.Sprintf("%T", spec)))
	}

	if keep == nil {
		return func(vars map[string]any) map[string]any {
			return vars
		}
	}
	return func(vars map[string]any) map[string]any {
		out := make(map[string]any, len(vars))
		for k, v := range vars {
			if keep(k, v) {
				out[k] = v
			}
		}
		return out
	}
}
