package tdtrack

import "github.com/randalmurphal/tdtrack/pkg/tdtrack/location"

// Environment describes the page the tracker runs in. It replaces lookups
// of browser globals and is fixed at construction.
type Environment struct {
	// Browser reports whether navigation and document context exist.
	// A tracker built with Browser false is inert.
	Browser bool

	// Referrer is the document referrer at startup. It is only meaningful
	// for the first page-view; later referrers come from navigation state.
	Referrer string

	// Protocol and Hostname of the current page, e.g. "https:" and
	// "www.example.com". Used when rendering structured locations.
	Protocol string
	Hostname string
}

// Origin returns the protocol and hostname used for location rendering.
func (e Environment) Origin() location.Origin {
	return location.Origin{Protocol: e.Protocol, Hostname: e.Hostname}
}
