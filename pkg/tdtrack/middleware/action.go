// Package middleware plugs a Tracker into a host action-dispatch pipeline.
//
// Each pipeline stage receives an Action and forwards it to the next stage.
// The tracking stage recognizes three action types and sends the matching
// records; every action, recognized or not, is forwarded unchanged.
package middleware

import "context"

// Action types understood by the tracking stage.
const (
	ActionSendPageView     = "@@analytics/SEND_PAGE_VIEW"
	ActionSendEvent        = "@@analytics/SEND_EVENT"
	ActionFallbackPageView = "@@analytics/FALLBACK_PAGEVIEW"
)

// FallbackKey marks records produced by ActionFallbackPageView.
const FallbackKey = "fallbackPageView"

// Payload is the data carried by tracking actions.
type Payload struct {
	// Location is the page for page-view actions: nil, a string, or a
	// structured location.
	Location any `json:"location,omitempty"`
	// Variables are the caller's record fields.
	Variables map[string]any `json:"variables,omitempty"`
	// EventName names the event for event actions.
	EventName string `json:"eventName,omitempty"`
}

// Action is a message flowing through the host pipeline.
type Action struct {
	Type    string  `json:"type"`
	Payload Payload `json:"payload"`
}

// Handler is one step of the pipeline.
type Handler func(ctx context.Context, action Action) error

// Middleware wraps the next Handler.
type Middleware func(next Handler) Handler

// Chain applies middleware around final, with the first middleware outermost.
func Chain(final Handler, middleware ...Middleware) Handler {
	h := final
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
