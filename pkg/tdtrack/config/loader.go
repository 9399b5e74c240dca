package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a config document is not a mapping of
// option names to values.
var ErrNotMapping = errors.New("tracker config must be a mapping of option names")

// FromFile loads tracker overrides from path. The format follows the
// extension: .yaml, .yml or .json. The result is meant to be passed to
// Merge over Defaults, so an empty file yields an empty Config.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read tracker config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = FromYAML(data)
	case ".json":
		cfg, err = FromJSON(data)
	default:
		return Config{}, fmt.Errorf("unsupported tracker config extension %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FromYAML parses tracker overrides from YAML.
func FromYAML(data []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse tracker config yaml: %w", err)
	}
	return fromDocument(doc)
}

// FromJSON parses tracker overrides from JSON.
func FromJSON(data []byte) (Config, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse tracker config json: %w", err)
	}
	return fromDocument(doc)
}

// fromDocument accepts a decoded top-level mapping. A null document is an
// empty set of overrides.
func fromDocument(doc any) (Config, error) {
	switch m := doc.(type) {
	case nil:
		return New(nil), nil
	case map[string]any:
		return New(m), nil
	default:
		return Config{}, fmt.Errorf("top level is %T: %w", doc, ErrNotMapping)
	}
}
