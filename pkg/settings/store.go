// Package settings provides the key/value settings stores that persist the
// search engine registry.
//
// Every backend stores the same flat document: four parallel string lists
// describing the commands, the selected index and the keyboard accelerator.
// Stores write the whole document at once so the parallel lists cannot drift.
package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Setting keys, shared by every backend.
const (
	KeyCommandNames      = "command-names"
	KeyCommandTemplates  = "command-templates"
	KeyCommandWildcards  = "command-wildcards"
	KeyCommandDelimiters = "command-delimiters"
	KeyCommandID         = "command-id"
	KeyOpenSearchBarKey  = "open-search-bar-key"
)

// Keys lists every key a store persists, in document order.
var Keys = []string{
	KeyCommandNames,
	KeyCommandTemplates,
	KeyCommandWildcards,
	KeyCommandDelimiters,
	KeyCommandID,
	KeyOpenSearchBarKey,
}

// Backend names accepted by Open.
const (
	BackendTOML   = "toml"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrNotFound is returned by Load when nothing has been stored yet
	ErrNotFound = errors.New("settings not found")

	// ErrUnknownBackend is returned by Open for an unsupported backend name
	ErrUnknownBackend = errors.New("unknown settings backend")
)

// Values is a raw settings document as read from or written to a store.
// Values read back may use backend specific types ([]any, int64, float64);
// callers decode them with mapstructure.
type Values map[string]any

// Store persists a settings document.
type Store interface {
	// Load returns the stored document, or ErrNotFound when there is none.
	Load() (Values, error)
	// Save replaces the stored document.
	Save(Values) error
	// Name returns the backend name.
	Name() string
	// Path returns the file backing the store, empty for memory stores.
	Path() string
}

// Open creates a store for backend at path. An empty path uses the default
// location inside dir.
func Open(backend, path, dir string) (Store, error) {
	if backend == "" {
		backend = BackendTOML
	}
	backend = strings.ToLower(backend)

	if path == "" && backend != BackendMemory {
		path = DefaultPath(backend, dir)
	}

	switch backend {
	case BackendTOML:
		return NewTOMLStore(path), nil
	case BackendYAML:
		return NewYAMLStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// DefaultPath returns the default settings file for backend inside dir.
func DefaultPath(backend, dir string) string {
	switch backend {
	case BackendYAML:
		return filepath.Join(dir, "settings.yaml")
	case BackendSQLite:
		return filepath.Join(dir, "settings.db")
	default:
		return filepath.Join(dir, "settings.toml")
	}
}

// clone copies the top level of v so a caller cannot mutate a stored document.
func clone(v Values) Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		if list, ok := val.([]string); ok {
			val = append([]string(nil), list...)
		}
		out[k] = val
	}
	return out
}
