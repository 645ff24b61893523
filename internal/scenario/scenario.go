package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"swarmsim/internal/config"
)

// Scenario defines a scripted encounter with ordered phases.
type Scenario struct {
	Name        string  `yaml:"name,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Phases      []Phase `yaml:"phases"`
}

// Phase describes a stage of the encounter. Entering a phase spawns its
// waves and optionally relocates the tracked target.
type Phase struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Waves       []Wave        `yaml:"waves,omitempty"`
	MoveTarget  *config.Point `yaml:"move_target,omitempty"`
	Triggers    []Trigger     `yaml:"triggers,omitempty"`
}

// Wave spawns a cluster of swarms around a center point.
type Wave struct {
	Center config.Point `yaml:"center"`
	Count  int          `yaml:"count"`
}

// Trigger moves the scenario to another phase based on an event.
type Trigger struct {
	Event string `yaml:"event"`
	Value int    `yaml:"value"`
	Next  string `yaml:"next"`
}

// Event represents a runtime occurrence that may advance the scenario.
type Event struct {
	Type  string
	Value int
}

// Load reads a YAML scenario definition from disk.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &s, nil
}

// Phase returns the named phase, or nil.
func (s *Scenario) Phase(name string) *Phase {
	for i := range s.Phases {
		if s.Phases[i].Name == name {
			return &s.Phases[i]
		}
	}
	return nil
}

// NextPhase returns the name of the next phase given the current phase and event.
// If no trigger matches, ok will be false.
func (s *Scenario) NextPhase(current string, ev Event) (next string, ok bool) {
	for _, p := range s.Phases {
		if p.Name != current {
			continue
		}
		for _, tr := range p.Triggers {
			if tr.Event == ev.Type && ev.Value >= tr.Value {
				return tr.Next, true
			}
		}
	}
	return "", false
}
