package tdtrack

// Kind classifies a record. Its string form is written to the track-type field.
type Kind string

// Record kinds.
const (
	KindPageView Kind = "pageview"
	KindEvent    Kind = "event"
)

// Phase is the navigation-tracking phase of a Tracker.
type Phase int

const (
	// PhaseUninitialized is the phase before the first page-view.
	PhaseUninitialized Phase = iota

	// PhaseTracking follows the first page-view. Every later page-view
	// shifts the current location into the referrer.
	PhaseTracking

	// PhaseInert marks a tracker that was built outside a browser.
	PhaseInert
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseTracking:
		return "tracking"
	case PhaseInert:
		return "inert"
	default:
		return "unknown"
	}
}

// NavigationState is the current page and the page before it.
// Values are locations as supplied by the caller: nil, a string, or a
// structured location.Location.
type NavigationState struct {
	Current  any
	Referrer any
}

// firstPage records the landing page. The referrer is the document referrer,
// which is only correct on the first page.
func (s *NavigationState) firstPage(loc any, referrer string) {
	s.Current = loc
	s.Referrer = nil
	if referrer != "" {
		s.Referrer = referrer
	}
}

// pageChanged moves to a new (possibly virtual) page. A nil or empty
// location keeps the current page, for transitions that do not change the URL.
func (s *NavigationState) pageChanged(loc any) {
	s.Referrer = s.Current
	if loc != nil && loc != "" {
		s.Current = loc
	}
}
