package config

// Defaults returns the built-in option values.
// Each call returns a fresh map so callers cannot alter shared state.
func Defaults() Config {
	return New(map[string]any{
		KeyPageViewTable:   "pageview",
		KeyEventTable:      "event",
		KeySendFalsyValues: false,
		KeySendTdValues:    false,
		KeySendReferrer:    false,
		KeySendLocation:    false,
		KeyReferrerKey:     "referrer",
		KeyLocationKey:     "location",
		KeyEventNameKey:    "event",
		KeyTrackTypeKey:    "trackType",
		KeyDryRun:          false,
		KeyBackend:         "memory",
		KeyURLFormat: map[string]any{
			KeyDisplayHostname: nil,
			KeyDisplayProtocol: nil,
			KeyShowQuery:       true,
			KeyShowHash:        true,
		},
		KeyTD: map[string]any{
			"database": "SET_YOUR_DATABASE_NAME",
			"writeKey": "SET_YOUR_WRITE_KEY",
		},
	})
}

// Merge layers overrides on top of defaults and returns a new Config.
//
// Top-level keys from overrides replace those in defaults. The KeyTD
// credentials map is merged one level deep. Neither input is modified.
func Merge(defaults, overrides Config) Config {
	out := make(map[string]any, len(defaults.data)+len(overrides.data))
	for k, v := range defaults.data {
		out[k] = v
	}
	for k, v := range overrides.data {
		out[k] = v
	}

	base, over := defaults.Credentials(), overrides.Credentials()
	if base != nil || over != nil {
		creds := make(map[string]any, len(base)+len(over))
		for k, v := range base {
			creds[k] = v
		}
		for k, v := range over {
			creds[k] = v
		}
		out[KeyTD] = creds
	}

	return Config{data: out}
}
