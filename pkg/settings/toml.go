package settings

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// TOMLStore keeps the document in a TOML file.
type TOMLStore struct {
	path string
}

// NewTOMLStore returns a store backed by the TOML file at path.
func NewTOMLStore(path string) *TOMLStore {
	return &TOMLStore{path: path}
}

func (s *TOMLStore) Load() (Values, error) {
	data, err := readFile(s.path)
	if err != nil {
		return nil, err
	}

	values := Values{}
	if _, err := toml.Decode(string(data), &values); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return values, nil
}

func (s *TOMLStore) Save(v Values) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(ordered(v)); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return writeFile(s.path, buf.Bytes())
}

func (s *TOMLStore) Name() string { return BackendTOML }

func (s *TOMLStore) Path() string { return s.path }

// document is the on-disk shape of a settings file. Field order fixes the
// key order in the written file.
type document struct {
	CommandNames      []string `toml:"command-names" yaml:"command-names"`
	CommandTemplates  []string `toml:"command-templates" yaml:"command-templates"`
	CommandWildcards  []string `toml:"command-wildcards" yaml:"command-wildcards"`
	CommandDelimiters []string `toml:"command-delimiters" yaml:"command-delimiters"`
	CommandID         int      `toml:"command-id" yaml:"command-id"`
	OpenSearchBarKey  []string `toml:"open-search-bar-key" yaml:"open-search-bar-key"`
}

// ordered converts a document written by the registry into its file shape so
// keys keep a stable order. Anything else is written as a plain map.
func ordered(v Values) any {
	if len(v) != len(Keys) {
		return map[string]any(v)
	}

	doc := document{}
	lists := map[string]*[]string{
		KeyCommandNames:      &doc.CommandNames,
		KeyCommandTemplates:  &doc.CommandTemplates,
		KeyCommandWildcards:  &doc.CommandWildcards,
		KeyCommandDelimiters: &doc.CommandDelimiters,
		KeyOpenSearchBarKey:  &doc.OpenSearchBarKey,
	}
	for key, dst := range lists {
		list, ok := v[key].([]string)
		if !ok {
			return map[string]any(v)
		}
		*dst = list
	}

	id, ok := v[KeyCommandID].(int)
	if !ok {
		return map[string]any(v)
	}
	doc.CommandID = id

	// Keep an empty accelerator list distinguishable from a missing key.
	if doc.OpenSearchBarKey == nil {
		doc.OpenSearchBarKey = []string{}
	}
	return doc
}
