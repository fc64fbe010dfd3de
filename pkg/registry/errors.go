package registry

import "errors"

var (
	// ErrOutOfRange is returned when an index does not address an entry
	ErrOutOfRange = errors.New("index out of range")

	// ErrEmptyRegistry is returned when the registry has no entries. The
	// registry never leaves that state on its own; seeing it means the
	// invariants were broken and callers should reset to defaults.
	ErrEmptyRegistry = errors.New("registry has no entries")

	// ErrCorruptPersistence marks a stored document that could not be used
	// as is. The registry recovers from it with defaults.
	ErrCorruptPersistence = errors.New("corrupt settings")

	// ErrInvalidEntry is returned by Upsert for an entry without a name
	ErrInvalidEntry = errors.New("invalid entry")
)
