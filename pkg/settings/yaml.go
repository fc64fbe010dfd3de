package settings

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLStore keeps the document in a YAML file.
type YAMLStore struct {
	path string
}

// NewYAMLStore returns a store backed by the YAML file at path.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

func (s *YAMLStore) Load() (Values, error) {
	data, err := readFile(s.path)
	if err != nil {
		return nil, err
	}

	values := Values{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return values, nil
}

func (s *YAMLStore) Save(v Values) error {
	data, err := yaml.Marshal(ordered(v))
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return writeFile(s.path, data)
}

func (s *YAMLStore) Name() string { return BackendYAML }

func (s *YAMLStore) Path() string { return s.path }
