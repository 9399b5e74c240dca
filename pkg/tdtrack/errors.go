package tdtrack

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInert indicates the tracker was built outside a browser environment
	// and does nothing for its whole lifetime.
	ErrInert = errors.New("tracker is inert outside a browser environment")

	// ErrTableNotConfigured indicates no destination table resolves for a record kind.
	ErrTableNotConfigured = errors.New("table name must be supplied")

	// ErrNoClient indicates a record had to be sent but no backend client was given.
	ErrNoClient = errors.New("no backend client configured")
)

// ConfigError reports configuration that prevents a submission.
type ConfigError struct {
	// Kind is the record kind being submitted.
	Kind Kind
	// Key is the configuration option at fault.
	Key string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s record: option %s: %v", e.Kind, e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SubmitError wraps a failure reported by the backend client.
type SubmitError struct {
	// Kind is the record kind being submitted.
	Kind Kind
	// Table is the destination table.
	Table string
	// Method is the backend method that was called.
	Method string
	// Err is the error the backend reported.
	Err error
}

// Error implements the error interface.
func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit %s record to %s via %s: %v", e.Kind, e.Table, e.Method, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SubmitError) Unwrap() error {
	return e.Err
}
