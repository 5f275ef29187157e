// Package scenario loads machine definitions from YAML and assembles them
// into a live machine. A document names its states, the kind of each one,
// kind-specific parameters and where the machine starts; the state kinds
// themselves are supplied by the host (internal/demo for the CLI).
package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/espalier"
)

// Scenario is the YAML document a machine is built from.
type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Start       string     `yaml:"start"`
	Tick        string     `yaml:"tick,omitempty"`             // Go duration, e.g. "250ms"
	ErrorMode   string     `yaml:"error_mode,omitempty"`       // "propagate" (default) or "capture"
	Limit       int        `yaml:"transition_limit,omitempty"` // chained transitions per tick, 0 = unbounded
	States      []StateDef `yaml:"states"`
}

// StateDef declares one state of the scenario.
type StateDef struct {
	ID          string         `yaml:"id"`
	Kind        string         `yaml:"kind"`
	Params      map[string]any `yaml:"params,omitempty"`
	Transitions []string       `yaml:"transitions,omitempty"` // advisory destinations
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that the document is internally consistent: states are
// present with unique ids, the start state and all declared transitions
// resolve, and the tick, error mode and limit are well formed.
func (s *Scenario) Validate() error {
	if len(s.States) == 0 {
		return &BuildError{Field: "states", Reason: "no states defined"}
	}
	seen := make(map[string]bool, len(s.States))
	for i, def := range s.States {
		if def.ID == "" {
			return &BuildError{Field: fmt.Sprintf("states[%d].id", i), Reason: "missing id"}
		}
		if def.Kind == "" {
			return &BuildError{Field: fmt.Sprintf("states[%d].kind", i), Reason: "missing kind"}
		}
		if seen[def.ID] {
			return &BuildError{Field: fmt.Sprintf("states[%d].id", i), Reason: fmt.Sprintf("duplicate id %q", def.ID)}
		}
		seen[def.ID] = true
	}
	for i, def := range s.States {
		for _, to := range def.Transitions {
			if !seen[to] {
				return &BuildError{Field: fmt.Sprintf("states[%d].transitions", i), Reason: fmt.Sprintf("unknown state %q", to)}
			}
		}
	}
	if s.Start == "" {
		return &BuildError{Field: "start", Reason: "missing start state"}
	}
	if !seen[s.Start] {
		return &BuildError{Field: "start", Reason: fmt.Sprintf("unknown state %q", s.Start)}
	}
	if s.Tick != "" {
		d, err := time.ParseDuration(s.Tick)
		if err != nil || d <= 0 {
			return &BuildError{Field: "tick", Reason: fmt.Sprintf("invalid duration %q", s.Tick)}
		}
	}
	switch s.ErrorMode {
	case "", "propagate", "capture":
	default:
		return &BuildError{Field: "error_mode", Reason: fmt.Sprintf("unknown mode %q", s.ErrorMode)}
	}
	if s.Limit < 0 {
		return &BuildError{Field: "transition_limit", Reason: "must not be negative"}
	}
	return nil
}

// TickInterval returns the parsed tick cadence, or fallback when the
// document does not set one.
func (s *Scenario) TickInterval(fallback time.Duration) time.Duration {
	if s.Tick == "" {
		return fallback
	}
	d, err := time.ParseDuration(s.Tick)
	if err != nil {
		return fallback
	}
	return d
}

// Mode returns the error mode the document selects.
func (s *Scenario) Mode() espalier.ErrorMode {
	if s.ErrorMode == "capture" {
		return espalier.Capture
	}
	return espalier.Propagate
}
