package config

import (
	"log/slog"
	"sort"

	"github.com/randalmurphal/tdtrack/pkg/tdtrack/location"
)

// Recognized option keys.
const (
	KeyPageViewTable   = "pageViewTable"
	KeyEventTable      = "eventTable"
	KeySendFalsyValues = "sendFalsyValues"
	KeySendTdValues    = "sendTdValues"
	KeySendReferrer    = "sendReferrer"
	KeySendLocation    = "sendLocation"
	KeyReferrerKey     = "referrerKey"
	KeyLocationKey     = "locationKey"
	KeyEventNameKey    = "eventNameKey"
	KeyTrackTypeKey    = "trackTypeKey"
	KeyDryRun          = "dryRun"
	KeyURLFormat       = "urlFormat"
	KeyBackend         = "backend"

	// KeyTD holds the backend credentials sub-map.
	KeyTD = "td"
)

// Keys inside the urlFormat map.
const (
	KeyDisplayHostname = "displayHostname"
	KeyDisplayProtocol = "displayProtocol"
	KeyShowQuery       = "showQuery"
	KeyShowHash        = "showHash"
)

// Config wraps a map[string]any for type-safe value extraction.
// A Config is not modified after creation.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (c Config) Bool(key string, defaultVal bool) bool {
	if b, ok := c.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Map returns the nested map for key, or nil if missing or not a map.
// YAML documents decode nested mappings as map[string]any, which is the
// only shape accepted.
func (c Config) Map(key string) map[string]any {
	m, _ := c.data[key].(map[string]any)
	return m
}

// Any returns the raw value for key, or defaultVal if missing.
func (c Config) Any(key string, defaultVal any) any {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	return v
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}

// Credentials returns the backend credentials sub-map.
// The map is handed to the backend as-is; its keys are not interpreted here.
func (c Config) Credentials() map[string]any {
	return c.Map(KeyTD)
}

// URLFormat returns the location rendering rules, or nil when urlFormat is
// unset or explicitly nil, which disables normalization.
func (c Config) URLFormat() *location.Format {
	m := c.Map(KeyURLFormat)
	if m == nil {
		return nil
	}
	f := New(m)
	return &location.Format{
		DisplayHostname: f.String(KeyDisplayHostname, ""),
		DisplayProtocol: f.String(KeyDisplayProtocol, ""),
		ShowQuery:       f.Bool(KeyShowQuery, false),
		ShowHash:        f.Bool(KeyShowHash, false),
	}
}

// LogValue implements slog.LogValuer. Keys are emitted in sorted order and
// the write key is masked.
func (c Config) LogValue() slog.Value {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		v := c.data[k]
		if k == KeyTD {
			v = maskCredentials(c.Credentials())
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return slog.GroupValue(attrs...)
}

func maskCredentials(creds map[string]any) map[string]any {
	out := make(map[string]any, len(creds))
	for k, v := range creds {
		if k == "writeKey" {
			v = "***"
		}
		out[k] = v
	}
	return out
}
