package config_test

import (
	"testing"

	"github.com/randalmurphal/tdtrack/pkg/tdtrack/config"
	"github.com/stretchr/testify/assert"
)

// TestMerge_Identity verifies merging an empty override yields the defaults.
func TestMerge_Identity(t *testing.T) {
	tests := []struct {
		name     string
		defaults config.Config
	}{
		{"built-in defaults", config.Defaults()},
		{"empty", config.New(nil)},
		{"no credentials", config.New(map[string]any{"dryRun": true})},
		{"unknown keys", config.New(map[string]any{"custom": []any{1, 2}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := config.Merge(tt.defaults, config.New(nil))
			assert.Equal(t, tt.defaults.Raw(), merged.Raw())
		})
	}
}

// TestMerge_TopLevel verifies overrides replace defaults at the top level.
func TestMerge_TopLevel(t *testing.T) {
	merged := config.Merge(config.Defaults(), config.New(map[string]any{
		"eventTable": "clicks",
		"dryRun":     true,
		"extra":      "kept",
	}))

	assert.Equal(t, "clicks", merged.String(config.KeyEventTable, ""))
	assert.Equal(t, "pageview", merged.String(config.KeyPageViewTable, ""))
	assert.True(t, merged.Bool(config.KeyDryRun, false))
	assert.Equal(t, "kept", merged.String("extra", ""))
}

// TestMerge_Credentials verifies the credentials map is merged one level deep.
func TestMerge_Credentials(t *testing.T) {
	merged := config.Merge(config.Defaults(), config.New(map[string]any{
		"td": map[string]any{"database": "web", "host": "in.example.com"},
	}))

	assert.Equal(t, map[string]any{
		"database": "web",
		"writeKey": "SET_YOUR_WRITE_KEY",
		"host":     "in.example.com",
	}, merged.Credentials())
}

// TestMerge_NestedNotRecursive verifies maps other than credentials are replaced whole.
func TestMerge_NestedNotRecursive(t *testing.T) {
	merged := config.Merge(config.Defaults(), config.New(map[string]any{
		"urlFormat": map[string]any{"showQuery": false},
	}))

	f := merged.URLFormat()
	assert.False(t, f.ShowQuery)
	assert.False(t, f.ShowHash, "showHash is not inherited from the default urlFormat")
}

// TestMerge_DoesNotMutateInputs verifies Merge is pure.
func TestMerge_DoesNotMutateInputs(t *testing.T) {
	defaults := config.Defaults()
	overrides := config.New(map[string]any{"td": map[string]any{"database": "web"}})

	_ = config.Merge(defaults, overrides)

	assert.Equal(t, "SET_YOUR_DATABASE_NAME", defaults.Credentials()["database"])
	assert.Equal(t, map[string]any{"database": "web"}, overrides.Credentials())
}

// TestMerge_NonMapCredentialsOverride verifies a malformed credentials override keeps the defaults.
func TestMerge_NonMapCredentialsOverride(t *testing.T) {
	merged := config.Merge(config.Defaults(), config.New(map[string]any{"td": nil}))
	assert.Equal(t, "SET_YOUR_DATABASE_NAME", merged.Credentials()["database"])
}
