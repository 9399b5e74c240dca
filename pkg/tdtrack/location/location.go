// Package location turns navigation locations into the display strings
// recorded as referrer and location fields.
package location

// Location is the structured form of a navigation target.
// Values that arrive as plain strings are never converted to a Location.
type Location struct {
	Pathname string `json:"pathname" yaml:"pathname"`
	Search   string `json:"search" yaml:"search"`
	Hash     string `json:"hash" yaml:"hash"`
}

// Origin supplies the protocol and hostname of the page the tracker runs on.
// They are used when the URL format does not override them.
type Origin struct {
	Protocol string
	Hostname string
}

// Parse extracts a structured Location from v.
//
// Accepts:
//   - Location and *Location
//   - map[string]any and map[string]string with pathname, search, hash keys
//
// Returns false for nil and every other type, strings included.
func Parse(v any) (Location, bool) {
	switch val := v.(type) {
	case Location:
		return val, true
	case *Location:
		if val == nil {
			return Location{}, false
		}
		return *val, true
	case map[string]any:
		var loc Location
		loc.Pathname, _ = val["pathname"].(string)
		loc.Search, _ = val["search"].(string)
		loc.Hash, _ = val["hash"].(string)
		return loc, true
	case map[string]string:
		return Location{Pathname: val["pathname"], Search: val["search"], Hash: val["hash"]}, true
	}
	return Location{}, false
}
