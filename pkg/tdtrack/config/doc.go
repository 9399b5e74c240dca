/*
Package config holds tracker options as a map with typed accessors.

# Overview

Options are kept as a map[string]any so that configuration decoded from YAML
or JSON, and options this package does not know about, pass through untouched.
Accessors return a default when a key is missing or has the wrong type.

# Merging

User options are layered over Defaults with Merge:

	cfg := config.Merge(config.Defaults(), config.New(map[string]any{
	    "dryRun": true,
	    "td":     map[string]any{"database": "web"},
	}))

	cfg.Bool(config.KeyDryRun, false)           // true
	cfg.Credentials()["writeKey"]               // "SET_YOUR_WRITE_KEY"

Top-level keys are replaced. The credentials map under KeyTD is merged one
level deep, so a partial override keeps the remaining default credentials.
Nothing deeper is merged.

# File Loading

	cfg, err := config.FromFile("tdtrack.yaml")

Supported extensions are .yaml, .yml and .json.
*/
package config
