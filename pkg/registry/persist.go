package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/lvim-tech/searchbar/pkg/settings"
)

// Source provides a stored settings document.
type Source interface {
	Load() (settings.Values, error)
}

// Sink receives a settings document to store.
type Sink interface {
	Save(settings.Values) error
}

// Store is both a Source and a Sink.
type Store interface {
	Source
	Sink
}

var commandKeys = []string{
	settings.KeyCommandNames,
	settings.KeyCommandTemplates,
	settings.KeyCommandWildcards,
	settings.KeyCommandDelimiters,
}

// Load replaces the registry state with the document from src.
//
// Nothing stored gives the defaults. A damaged document is recovered field by
// field: the four command lists fall back to the defaults together, the
// selected index and the accelerator fall back on their own. Recovery is
// logged; only a failure to read src is returned.
func (r *Registry) Load(src Source) error {
	values, err := src.Load()
	switch {
	case errors.Is(err, settings.ErrNotFound):
		r.logger.Debug("no stored settings, using defaults")
		values = nil
	case err != nil:
		return fmt.Errorf("failed to load settings: %w", err)
	}

	st, err := decode(values)
	if err != nil {
		r.logger.Warn("recovered settings", "error", err)
	}

	r.state = st
	r.publish(Change{Kind: ChangeLoaded, Index: -1})
	return nil
}

// Save writes the registry state to sink.
func (r *Registry) Save(sink Sink) error {
	if err := sink.Save(r.values()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// values flattens the state into the parallel-list document.
func (r *Registry) values() settings.Values {
	n := len(r.entries)
	names := make([]string, 0, n)
	templates := make([]string, 0, n)
	wildcards := make([]string, 0, n)
	delimiters := make([]string, 0, n)
	for _, e := range r.entries {
		names = append(names, e.Name)
		templates = append(templates, e.Template)
		wildcards = append(wildcards, e.Wildcard)
		delimiters = append(delimiters, e.Delimiter)
	}

	return settings.Values{
		settings.KeyCommandNames:      names,
		settings.KeyCommandTemplates:  templates,
		settings.KeyCommandWildcards:  wildcards,
		settings.KeyCommandDelimiters: delimiters,
		settings.KeyCommandID:         r.selected,
		settings.KeyOpenSearchBarKey:  append([]string{}, r.keys...),
	}
}

// decode builds a state from a stored document. The returned state is always
// usable; the error wraps ErrCorruptPersistence and lists what was recovered.
func decode(v settings.Values) (state, error) {
	st := defaultState()
	if len(v) == 0 {
		return st, nil
	}

	var problems []string

	lists := make([][]string, len(commandKeys))
	var missing, broken []string
	for i, key := range commandKeys {
		raw, ok := v[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		if err := weakDecode(raw, &lists[i]); err != nil {
			broken = append(broken, key)
		}
	}

	commandsOK := false
	switch {
	case len(missing) == len(commandKeys):
		// Only the other keys were stored.
	case len(missing) > 0:
		problems = append(problems, "missing "+strings.Join(missing, ", "))
	case len(broken) > 0:
		problems = append(problems, "undecodable "+strings.Join(broken, ", "))
	default:
		entries, err := zipEntries(lists[0], lists[1], lists[2], lists[3])
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			st.entries = entries
			commandsOK = true
		}
	}

	// The stored index only means something for the stored commands.
	if commandsOK {
		if raw, ok := v[settings.KeyCommandID]; ok {
			var id int
			if err := weakDecode(raw, &id); err != nil {
				problems = append(problems, "undecodable "+settings.KeyCommandID)
			} else {
				st.selected = clamp(id, len(st.entries))
			}
		} else {
			problems = append(problems, "missing "+settings.KeyCommandID)
		}
	}

	if raw, ok := v[settings.KeyOpenSearchBarKey]; ok {
		var keys []string
		if err := weakDecode(raw, &keys); err != nil {
			problems = append(problems, "undecodable "+settings.KeyOpenSearchBarKey)
		} else {
			if len(keys) > 1 {
				keys = keys[:1]
			}
			st.keys = append([]string{}, keys...)
		}
	} else {
		problems = append(problems, "missing "+settings.KeyOpenSearchBarKey)
	}

	if len(problems) > 0 {
		return st, fmt.Errorf("%w: %s", ErrCorruptPersistence, strings.Join(problems, "; "))
	}
	return st, nil
}

// zipEntries joins the parallel lists into entries.
func zipEntries(names, templates, wildcards, delimiters []string) ([]Entry, error) {
	n := len(names)
	if len(templates) != n || len(wildcards) != n || len(delimiters) != n {
		return nil, fmt.Errorf("command lists differ in length (%d/%d/%d/%d)",
			n, len(templates), len(wildcards), len(delimiters))
	}
	if n == 0 {
		return nil, fmt.Errorf("no commands stored")
	}

	seen := make(map[string]bool, n)
	entries := make([]Entry, 0, n)
	for i := range names {
		if strings.TrimSpace(names[i]) == "" {
			return nil, fmt.Errorf("command %d has no name", i)
		}
		if seen[names[i]] {
			return nil, fmt.Errorf("duplicate command name %q", names[i])
		}
		seen[names[i]] = true

		entries = append(entries, Entry{
			Name:      names[i],
			Template:  templates[i],
			Wildcard:  wildcards[i],
			Delimiter: delimiters[i],
		})
	}
	return entries, nil
}

// weakDecode decodes a backend value (for example []any or int64) into out.
func weakDecode(raw, out any) error {
	if raw == nil {
		return fmt.Errorf("null value")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func clamp(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
