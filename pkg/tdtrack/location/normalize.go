package location

// Format controls how structured locations are rendered.
// A nil *Format disables normalization entirely.
type Format struct {
	// DisplayHostname replaces the origin hostname when non-empty,
	// e.g. to fold subdomains into one site.
	DisplayHostname string
	// DisplayProtocol replaces the origin protocol when non-empty,
	// e.g. "https:" to merge http and https pages.
	DisplayProtocol string
	ShowQuery       bool
	ShowHash        bool
}

// Normalizer converts a location value into its recorded form.
type Normalizer func(loc any) any

// Identity returns loc unchanged.
func Identity(loc any) any {
	return loc
}

// NewNormalizer returns a Normalizer for the given format.
// When format is nil the Identity normalizer is returned.
//
// The returned normalizer yields nil for nil or empty input, passes strings through
// unchanged, and renders structured locations as
// protocol + "//" + hostname + pathname [+ search] [+ hash].
// Values it cannot interpret become nil.
func NewNormalizer(format *Format, origin Origin) Normalizer {
	if format == nil {
		return Identity
	}
	f := *format
	return func(loc any) any {
		if loc == nil || loc == "" {
			return nil
		}
		if s, ok := loc.(string); ok {
			return s
		}
		l, ok := Parse(loc)
		if !ok {
			return nil
		}
		return f.render(l, origin)
	}
}

func (f Format) render(l Location, origin Origin) string {
	protocol := f.DisplayProtocol
	if protocol == "" {
		protocol = origin.Protocol
	}
	hostname := f.DisplayHostname
	if hostname == "" {
		hostname = origin.Hostname
	}

	out := protocol + "//" + hostname + l.Pathname
	if f.ShowQuery {
		out += l.Search
	}
	if f.ShowHash {
		out += l.Hash
	}
	return out
}
