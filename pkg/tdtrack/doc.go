/*
Package tdtrack turns page-view and custom-event notifications into
analytics records and submits them to a backend client.

# Overview

A Tracker keeps the navigation state of a single-page application: the
current page and the page before it. Each page-view moves the current page
into the referrer. Records are enriched with a track-type field and, when
enabled, the normalized referrer and location, then dropped of empty values
and handed to a Dispatcher.

The Dispatcher picks the destination table by record kind and sends the
record through one of two backend methods: AddRecord for raw rows, or
TrackEvent when sendTdValues asks the backend to add its td_* fields.

# Basic Usage

	env := tdtrack.Environment{
	    Browser:  true,
	    Referrer: "https://search.example.com/",
	    Protocol: "https:",
	    Hostname: "shop.example.com",
	}
	client := backend.NewMemoryClient("web")

	tracker := tdtrack.New(env, config.New(map[string]any{
	    "sendReferrer": true,
	    "sendLocation": true,
	}), client)

	_, err := tracker.SendPageView(ctx, location.Location{Pathname: "/items"}, nil)
	_, err = tracker.SendEvent(ctx, "add_to_cart", map[string]any{"sku": "A-1"})

# Dry Run

With dryRun set, records are composed and logged but never sent, and the
returned Outcome has DryRun set.

# Environment

Environment replaces browser globals. A tracker built with Browser false
logs an error and stays inert: every call returns ErrInert.

# Middleware

Package middleware adapts a Tracker to an action pipeline: page-view, event
and fallback actions are tracked, and every action is passed on.

	h := middleware.Chain(next, middleware.New(tracker, env,
	    middleware.WithVariablesFilter([]string{"title"})))

# Errors

A missing table yields a *ConfigError wrapping ErrTableNotConfigured.
Backend failures are logged and returned as *SubmitError. Nothing is retried.
*/
package tdtrack
