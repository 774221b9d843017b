package scenario

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Write writes a scenario to a YAML file
func Write(s *Scenario, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshal scenario")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write scenario %s", path)
	}
	return nil
}

// Read reads a scenario from a YAML file
func Read(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parse scenario %s", path)
	}
	return &s, nil
}
