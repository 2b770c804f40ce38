package scenarios

import (
	"embed"
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/jobseq/core/model"
)

//go:embed data/*.yaml
var builtin embed.FS

// Scenario is a fixed job set with the order a strategy must produce.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Jobs        []model.Job   `yaml:"jobs"`
	Expected    []model.JobID `yaml:"expected"`
	// Strategies restricts the scenario to the listed strategies. Empty means
	// boundary only, since the expected order is tied to its slot accounting.
	Strategies []string `yaml:"strategies,omitempty"`
}

// Load reads a scenario from a yaml file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(path, data)
}

// Builtin returns the embedded reference scenarios sorted by file name.
func Builtin() ([]*Scenario, error) {
	entries, err := builtin.ReadDir("data")
	if err != nil {
		return nil, err
	}
	out := make([]*Scenario, 0, len(entries))
	for _, e := range entries {
		name := path.Join("data", e.Name())
		data, err := builtin.ReadFile(name)
		if err != nil {
			return nil, err
		}
		sc, err := parse(name, data)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

func parse(name string, data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	if sc.Name == "" {
		sc.Name = name
	}
	for _, j := range sc.Jobs {
		if err := j.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
	}
	return &sc, nil
}
