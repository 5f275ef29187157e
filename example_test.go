package espalier_test

import (
	"errors"
	"fmt"

	"github.com/aretw0/espalier"
)

// tally is the shared context for the examples.
type tally struct {
	Done int
}

// work counts updates and hands off to "rest" when enough are done.
type work struct {
	espalier.Base[*tally]
}

func (s *work) Update(m *espalier.Machine[*tally]) error {
	t := m.Context()
	t.Done++
	if t.Done == 2 {
		return m.Goto("rest")
	}
	return nil
}

// rest reports how much work preceded it.
type rest struct {
	espalier.Base[*tally]
}

func (s *rest) Entry(m *espalier.Machine[*tally]) error {
	fmt.Printf("resting after %d updates\n", m.Context().Done)
	return nil
}

func Example() {
	m := espalier.New(&tally{})
	if err := m.Register("work", &work{}); err != nil {
		fmt.Println("register:", err)
		return
	}
	if err := m.Register("rest", &rest{}); err != nil {
		fmt.Println("register:", err)
		return
	}
	if err := m.SetStartState("work"); err != nil {
		fmt.Println("start:", err)
		return
	}

	for m.Current() != "rest" {
		if err := m.Update(); err != nil {
			fmt.Println("tick failed:", err)
			return
		}
	}
	fmt.Println("current:", m.Current())
	// Output:
	// resting after 2 updates
	// current: rest
}

// flaky fails its first update, then moves on.
type flaky struct {
	espalier.Base[*tally]
	failed bool
}

func (s *flaky) Update(m *espalier.Machine[*tally]) error {
	if !s.failed {
		s.failed = true
		return errors.New("sensor offline")
	}
	return m.Goto("rest")
}

func ExampleMachine_SetErrorHandler() {
	m := espalier.New(&tally{}, espalier.WithErrorMode(espalier.Capture))
	m.SetErrorHandler(func(err error) bool {
		fmt.Println("captured:", err)
		return true
	})

	if err := m.Register("sense", &flaky{}); err != nil {
		fmt.Println("register:", err)
		return
	}
	if err := m.Register("rest", &rest{}); err != nil {
		fmt.Println("register:", err)
		return
	}
	if err := m.SetStartState("sense"); err != nil {
		fmt.Println("start:", err)
		return
	}

	for m.Current() != "rest" {
		if err := m.Update(); err != nil {
			fmt.Println("tick failed:", err)
			return
		}
	}
	// Output:
	// captured: sensor offline
	// resting after 0 updates
}
