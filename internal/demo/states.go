package demo

import (
	"fmt"

	"github.com/aretw0/espalier"
)

// LampParams configures a Lamp.
type LampParams struct {
	Dwell int    `mapstructure:"dwell"` // updates to stay lit, min 1
	Next  string `mapstructure:"next"`  // destination when the dwell ends, empty = stay lit
}

// Lamp stays lit for a fixed number of updates and then hands over, the
// classic traffic light loop.
type Lamp struct {
	espalier.Base[*Board]
	id      espalier.StateID
	params  LampParams
	elapsed int
}

// NewLamp builds a lamp state. A dwell below 1 is raised to 1.
func NewLamp(id espalier.StateID, params LampParams) *Lamp {
	if params.Dwell < 1 {
		params.Dwell = 1
	}
	return &Lamp{id: id, params: params}
}

func (s *Lamp) Entry(m *espalier.Machine[*Board]) error {
	s.elapsed = 0
	m.Context().Printf("%s: on", s.id)
	return nil
}

func (s *Lamp) Update(m *espalier.Machine[*Board]) error {
	m.Context().Bump(s.id)
	s.elapsed++
	if s.params.Next != "" && s.elapsed >= s.params.Dwell {
		return m.Goto(espalier.StateID(s.params.Next))
	}
	return nil
}

func (s *Lamp) Exit(m *espalier.Machine[*Board]) error {
	m.Context().Printf("%s: off", s.id)
	return nil
}

// CounterParams configures a Counter.
type CounterParams struct {
	Target int    `mapstructure:"target"` // count to reach, min 1
	Then   string `mapstructure:"then"`   // destination once reached, empty = stay
}

// Counter counts updates toward a target and optionally moves on when it
// gets there.
type Counter struct {
	espalier.Base[*Board]
	id     espalier.StateID
	params CounterParams
	count  int
}

// NewCounter builds a counter state. A target below 1 is raised to 1.
func NewCounter(id espalier.StateID, params CounterParams) *Counter {
	if params.Target < 1 {
		params.Target = 1
	}
	return &Counter{id: id, params: params}
}

func (s *Counter) Entry(m *espalier.Machine[*Board]) error {
	s.count = 0
	m.Context().Printf("%s: counting to %d", s.id, s.params.Target)
	return nil
}

func (s *Counter) Update(m *espalier.Machine[*Board]) error {
	board := m.Context()
	board.Bump(s.id)
	s.count++
	if s.count == s.params.Target {
		board.Printf("%s: reached %d", s.id, s.count)
		if s.params.Then != "" {
			return m.Goto(espalier.StateID(s.params.Then))
		}
	}
	return nil
}

// FlakyParams configures a Flaky state.
type FlakyParams struct {
	Every   int    `mapstructure:"every"`   // fail every Nth update, min 2
	Panic   bool   `mapstructure:"panic"`   // panic instead of returning an error
	Message string `mapstructure:"message"` // failure text
}

// Flaky fails every Nth update, either by returning an error or by
// panicking. Pair it with error_mode: capture to watch the machine shrug
// failures off, or with propagate to watch the run stop.
type Flaky struct {
	espalier.Base[*Board]
	id     espalier.StateID
	params FlakyParams
	seen   int
}

// NewFlaky builds a flaky state. An interval below 2 becomes 3, and an
// empty message gets a default.
func NewFlaky(id espalier.StateID, params FlakyParams) *Flaky {
	if params.Every < 2 {
		params.Every = 3
	}
	if params.Message == "" {
		params.Message = "synthetic failure"
	}
	return &Flaky{id: id, params: params}
}

func (s *Flaky) Update(m *espalier.Machine[*Board]) error {
	m.Context().Bump(s.id)
	s.seen++
	if s.seen%s.params.Every == 0 {
		if s.params.Panic {
			panic(s.params.Message)
		}
		return fmt.Errorf("%s: %s", s.id, s.params.Message)
	}
	return nil
}
