package backend

import (
	"fmt"
	"sort"
	"sync"
)

// ClosableClient is a Client that holds resources.
type ClosableClient interface {
	Client
	Close() error
}

// Factory builds a client from opaque credentials.
type Factory func(credentials map[string]any) (ClosableClient, error)

var (
	factoriesMu sync.RWMutex
	factories   = map[string]Factory{
		"memory": func(creds map[string]any) (ClosableClient, error) {
			database, _, err := requireCredentials(creds)
			if err != nil {
				return nil, err
			}
			return NewMemoryClient(database), nil
		},
		"sqlite": func(creds map[string]any) (ClosableClient, error) {
			database, _, err := requireCredentials(creds)
			if err != nil {
				return nil, err
			}
			path, _ := creds["path"].(string)
			if path == "" {
				path = ":memory:"
			}
			return NewSQLiteClient(path, database)
		},
	}
)

// Register makes a backend available to Open under name.
// Registering an existing name replaces it.
func Register(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = factory
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open builds the backend registered under name.
//
// Built-in backends are "memory" and "sqlite". Both require non-empty
// database and writeKey credentials; "sqlite" also reads path
// (default ":memory:").
func Open(name string, credentials map[string]any) (ClosableClient, error) {
	factoriesMu.RLock()
	factory, ok := factories[name]
	factoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return factory(credentials)
}

func requireCredentials(creds map[string]any) (database, writeKey string, err error) {
	database, _ = creds["database"].(string)
	writeKey, _ = creds["writeKey"].(string)
	if database == "" || writeKey == "" {
		return "", "", ErrMissingCredentials
	}
	return database, writeKey, nil
}
