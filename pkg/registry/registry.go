// Package registry holds the ordered list of search engines (command
// entries), the currently selected one and the search bar accelerator.
//
// A Registry is owned by a single goroutine and is not safe for concurrent
// use. When bound to a store every mutation is written through before the
// call returns; a failed write leaves the in-memory state unchanged.
package registry

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Entry is one named command.
type Entry struct {
	Name      string `json:"name" toml:"name"`
	Template  string `json:"template" toml:"template"`
	Wildcard  string `json:"wildcard" toml:"wildcard"`
	Delimiter string `json:"delimiter" toml:"delimiter"`
}

// ChangeKind tells what a Change was about.
type ChangeKind int

const (
	ChangeUpserted ChangeKind = iota
	ChangeRemoved
	ChangeSelected
	ChangeReset
	ChangeLoaded
	ChangeKey
)

// String returns the name of the change kind
func (k ChangeKind) String() string {
	switch k {
	case ChangeUpserted:
		return "upserted"
	case ChangeRemoved:
		return "removed"
	case ChangeSelected:
		return "selected"
	case ChangeReset:
		return "reset"
	case ChangeLoaded:
		return "loaded"
	case ChangeKey:
		return "key"
	default:
		return "unknown"
	}
}

// Change is published to subscribers after a successful mutation.
type Change struct {
	Kind ChangeKind
	// Index is the entry the change was about, -1 when it affects the whole registry.
	Index int
	Name  string
	// Selected is the selected index after the change.
	Selected int
}

// subscriberBuffer is the number of changes a slow subscriber may lag behind.
const subscriberBuffer = 16

// state is the part of a Registry that is persisted.
type state struct {
	entries  []Entry
	selected int
	keys     []string
}

func (s state) clone() state {
	return state{
		entries:  append([]Entry(nil), s.entries...),
		selected: s.selected,
		keys:     append([]string{}, s.keys...),
	}
}

func defaultState() state {
	return state{entries: DefaultEntries(), selected: 0, keys: DefaultKeys()}
}

// Registry is the ordered, indexable collection of entries.
type Registry struct {
	state

	store  Store
	logger hclog.Logger

	subs    map[int]chan Change
	nextSub int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStore writes every mutation through to store.
func WithStore(store Store) Option {
	return func(r *Registry) {
		r.store = store
	}
}

// New returns a registry holding the default entries.
func New(opts ...Option) *Registry {
	r := &Registry{
		state:  defaultState(),
		logger: hclog.NewNullLogger(),
		subs:   make(map[int]chan Change),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open returns a registry loaded from store and bound to it. Missing or
// unreadable settings give the defaults; problems are logged, not returned.
func Open(store Store, opts ...Option) *Registry {
	r := New(append(opts, WithStore(store))...)
	if err := r.Load(store); err != nil {
		r.logger.Warn("failed to load settings, using defaults", "error", err)
	}
	return r
}

// List returns a copy of the entries in display order.
func (r *Registry) List() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// At returns the entry at index i.
func (r *Registry) At(i int) (Entry, error) {
	if i < 0 || i >= len(r.entries) {
		return Entry{}, fmt.Errorf("%w: %d (have %d entries)", ErrOutOfRange, i, len(r.entries))
	}
	return r.entries[i], nil
}

// Find returns the index of the entry called name.
func (r *Registry) Find(name string) (int, bool) {
	for i, e := range r.entries {
		if e.Name == name {
			return i, true
		}
	}
	return -1, false
}

// SelectedIndex returns the index of the selected entry.
func (r *Registry) SelectedIndex() int {
	return r.selected
}

// Selected returns the selected entry.
func (r *Registry) Selected() (Entry, error) {
	if len(r.entries) == 0 {
		return Entry{}, ErrEmptyRegistry
	}
	return r.entries[r.selected], nil
}

// OpenSearchBarKey returns the stored accelerators (zero or one).
func (r *Registry) OpenSearchBarKey() []string {
	return append([]string{}, r.keys...)
}

// Select makes the entry at index i the selected one.
func (r *Registry) Select(i int) error {
	if i < 0 || i >= len(r.entries) {
		return fmt.Errorf("%w: %d (have %d entries)", ErrOutOfRange, i, len(r.entries))
	}

	prev := r.state.clone()
	r.selected = i
	return r.commit(prev, Change{Kind: ChangeSelected, Index: i, Name: r.entries[i].Name})
}

// Upsert replaces the entry with the same name in place, or appends e when
// the name is new. It returns the entry's index. The selection is left alone.
func (r *Registry) Upsert(e Entry) (int, error) {
	if strings.TrimSpace(e.Name) == "" {
		return -1, fmt.Errorf("%w: name must not be empty", ErrInvalidEntry)
	}

	prev := r.state.clone()

	idx, exists := r.Find(e.Name)
	if exists {
		r.entries[idx] = e
	} else {
		r.entries = append(r.entries, e)
		idx = len(r.entries) - 1
	}

	if err := r.commit(prev, Change{Kind: ChangeUpserted, Index: idx, Name: e.Name}); err != nil {
		return -1, err
	}

	r.logger.Debug("entry saved", "name", e.Name, "index", idx, "appended", !exists)
	return idx, nil
}

// RemoveAt removes the entry at index i. Removing the last remaining entry is
// a no-op and reports false.
//
// Removing the selected entry moves the selection to the previous entry (or
// the first one). Removing an entry before the selected one keeps the same
// entry selected.
func (r *Registry) RemoveAt(i int) (bool, error) {
	if i < 0 || i >= len(r.entries) {
		return false, fmt.Errorf("%w: %d (have %d entries)", ErrOutOfRange, i, len(r.entries))
	}
	if len(r.entries) == 1 {
		return false, nil
	}

	prev := r.state.clone()
	name := r.entries[i].Name

	r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
	switch {
	case i == r.selected:
		r.selected = max(r.selected-1, 0)
	case i < r.selected:
		r.selected--
	}

	if err := r.commit(prev, Change{Kind: ChangeRemoved, Index: i, Name: name}); err != nil {
		return false, err
	}

	r.logger.Debug("entry removed", "name", name, "index", i, "selected", r.selected)
	return true, nil
}

// ResetToDefaults restores the built-in entries, selects the first one and
// restores the default accelerator.
func (r *Registry) ResetToDefaults() error {
	prev := r.state.clone()
	r.state = defaultState()
	return r.commit(prev, Change{Kind: ChangeReset, Index: -1})
}

// SetOpenSearchBarKey stores accel as the search bar accelerator. An empty
// accel clears it.
func (r *Registry) SetOpenSearchBarKey(accel string) error {
	prev := r.state.clone()
	if accel == "" {
		r.keys = []string{}
	} else {
		r.keys = []string{accel}
	}
	return r.commit(prev, Change{Kind: ChangeKey, Index: -1, Name: accel})
}

// Subscribe returns a channel receiving every change made through this
// registry, and a function that ends the subscription and closes the
// channel. Changes are dropped for a subscriber that falls too far behind.
func (r *Registry) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch

	return ch, func() {
		if c, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(c)
		}
	}
}

// commit persists the current state and publishes change. When the write
// fails the state is rolled back to prev.
func (r *Registry) commit(prev state, change Change) error {
	if r.store != nil {
		if err := r.store.Save(r.values()); err != nil {
			r.state = prev
			return fmt.Errorf("failed to persist settings: %w", err)
		}
	}
	r.publish(change)
	return nil
}

func (r *Registry) publish(change Change) {
	change.Selected = r.selected
	for _, ch := range r.subs {
		select {
		case ch <- change:
		default:
			r.logger.Warn("subscriber lagging, change dropped", "change", change.Kind.String())
		}
	}
}
