package runner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/runner"
)

type counter struct {
	n int
}

// working bumps the counter each tick and optionally hands off to "done".
type working struct {
	espalier.Base[*counter]
	handOffAt int
	err       error
}

func (s *working) Update(m *espalier.Machine[*counter]) error {
	if s.err != nil {
		return s.err
	}
	c := m.Context()
	c.n++
	if s.handOffAt > 0 && c.n >= s.handOffAt {
		return m.Goto("done")
	}
	return nil
}

type done struct {
	espalier.Base[*counter]
}

func newMachine(t *testing.T, work *working) *espalier.Machine[*counter] {
	t.Helper()
	m := espalier.New(&counter{}, espalier.WithName("runner-test"))
	require.NoError(t, m.Register("working", work))
	require.NoError(t, m.Register("done", &done{}))
	require.NoError(t, m.SetStartState("working"))
	return m
}

func TestRun_StopsAtMaxTicks(t *testing.T) {
	m := newMachine(t, &working{})
	r := runner.Runner[*counter]{Interval: time.Millisecond, MaxTicks: 5}

	err := r.Run(t.Context(), m)

	require.NoError(t, err)
	assert.Equal(t, uint64(5), m.Ticks())
	// Tick 1 is startup; the remaining four ran the update hook.
	assert.Equal(t, 4, m.Context().n)
}

func TestRun_StopsOnPredicate(t *testing.T) {
	m := newMachine(t, &working{handOffAt: 3})
	r := runner.Runner[*counter]{
		Interval: time.Millisecond,
		StopWhen: func(m *espalier.Machine[*counter]) bool {
			return m.Current() == "done"
		},
	}

	err := r.Run(t.Context(), m)

	require.NoError(t, err)
	assert.Equal(t, espalier.StateID("done"), m.Current())
	assert.Equal(t, 3, m.Context().n)
}

func TestRun_ReturnsContextError(t *testing.T) {
	m := newMachine(t, &working{})
	r := runner.Runner[*counter]{Interval: time.Millisecond}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := r.Run(ctx, m)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ReturnsUpdateError(t *testing.T) {
	boom := errors.New("boom")
	m := newMachine(t, &working{err: boom})
	r := runner.Runner[*counter]{Interval: time.Millisecond}

	err := r.Run(t.Context(), m)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	// Startup succeeded, the second tick failed.
	assert.ErrorContains(t, err, "tick 2")
}

func TestRun_CancelWhileTicking(t *testing.T) {
	m := newMachine(t, &working{})
	r := runner.Runner[*counter]{Interval: time.Millisecond}

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := r.Run(ctx, m)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, m.Running(), "machine should have started before cancellation")
}
