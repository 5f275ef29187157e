// Package demo ships the state kinds the espalier CLI builds scenarios
// from. They exercise the engine end to end: lamps that dwell and hand
// over, a counter that works toward a goal, and a flaky state that fails on
// purpose so the error modes have something to chew on.
package demo

import (
	"fmt"
	"io"

	"github.com/aretw0/espalier"
)

// Board is the shared context of the demo machine. States print progress to
// Out and tally their updates so commands and tests can inspect activity.
type Board struct {
	Out io.Writer

	updates map[espalier.StateID]int
}

// NewBoard returns a board writing to out. A nil out discards everything.
func NewBoard(out io.Writer) *Board {
	if out == nil {
		out = io.Discard
	}
	return &Board{
		Out:     out,
		updates: make(map[espalier.StateID]int),
	}
}

// Printf writes one line of demo output.
func (b *Board) Printf(format string, args ...any) {
	fmt.Fprintf(b.Out, format+"\n", args...)
}

// Bump records one update by the given state and returns its new tally.
func (b *Board) Bump(id espalier.StateID) int {
	b.updates[id]++
	return b.updates[id]
}

// Updates returns how many updates the given state has run.
func (b *Board) Updates(id espalier.StateID) int {
	return b.updates[id]
}
