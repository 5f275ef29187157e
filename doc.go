/*
Package espalier is a small, embeddable finite state machine engine driven by
an external tick, designed for simulation loops, device controllers, and
long-lived workers that already own their own cadence.

It implements a "Tick-Driven FSM with Cooperative Transitions" architecture,
separating the state logic (your State implementations) from the shared data
they act on (the Context) and from the loop that drives them (the Host).

# Concept

Espalier treats your component as a set of named states around a shared
context value. The machine owns which state is current and how control moves
between states; your application ("Host") owns the tick cadence, the context
instance, and everything outside the machine. The engine performs no I/O and
spawns no goroutines, so it can be embedded in a game loop, a cobra command,
an HTTP server, or a test without ceremony.

# Key Features

  - Externally clocked: nothing happens outside your Update call; a tick
    either completes or fails atomically.
  - Cooperative transitions: states request where to go next with Goto;
    chained transitions drain fully within the requesting tick.
  - Explicit failure policy: hook errors propagate to the caller or are
    offered to a capture handler, never silently dropped.
  - Misuse detection: reentrant and cross-goroutine Update calls are
    reported as distinct errors instead of corrupting state.

# Usage

Register states, designate where to start, then tick. The first Update call
performs startup by entering the start state.

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/espalier"
	)

	type Counter struct {
		N int
	}

	type counting struct {
		espalier.Base[*Counter]
	}

	func (s *counting) Update(m *espalier.Machine[*Counter]) error {
		c := m.Context()
		c.N++
		if c.N >= 3 {
			return m.Goto("done")
		}
		return nil
	}

	type done struct {
		espalier.Base[*Counter]
	}

	func (s *done) Entry(m *espalier.Machine[*Counter]) error {
		fmt.Println("counted to", m.Context().N)
		return nil
	}

	func main() {
		m := espalier.New(&Counter{})
		if err := m.Register("counting", &counting{}); err != nil {
			log.Fatal(err)
		}
		if err := m.Register("done", &done{}); err != nil {
			log.Fatal(err)
		}
		if err := m.SetStartState("counting"); err != nil {
			log.Fatal(err)
		}

		for !m.Running() || m.Current() != "done" {
			if err := m.Update(); err != nil {
				log.Fatal(err)
			}
		}
	}
*/
package espalier
