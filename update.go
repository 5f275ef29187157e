package espalier

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/petermattis/goid"
)

// SetStartState designates the state startup enters. Only legal while the
// machine is not running; the first Update performs the actual entry.
// Calling it again before startup replaces the designation.
func (m *Machine[C]) SetStartState(id StateID) error {
	if m.Running() {
		return fmt.Errorf("set start state %q: %w", id, ErrMachineRunning)
	}
	state, ok := m.states[id]
	if !ok {
		return fmt.Errorf("set start state %q: %w", id, ErrStateNotFound)
	}
	m.next.Store(&binding[C]{id: id, state: state})
	m.logger.Debug("start state designated", "state", id)
	return nil
}

// Goto requests a transition to id. Called from a state hook, the request is
// drained before the current tick returns; called between ticks, the next
// Update performs it before running any Update hook. A second Goto before
// the transition runs replaces the pending target.
//
// Goto does not consult the states' advisory destination sets: a transition
// to any registered state succeeds.
func (m *Machine[C]) Goto(id StateID) error {
	state, ok := m.states[id]
	if !ok {
		return fmt.Errorf("goto state %q: %w", id, ErrStateNotFound)
	}
	m.next.Store(&binding[C]{id: id, state: state})
	m.logger.Debug("transition requested", "from", m.Current(), "to", id)
	return nil
}

// Update runs one tick.
//
// The first call performs startup: the designated start state becomes
// current and its Entry hook runs. Every later call runs the current state's
// Update hook, unless a transition is already pending, and then drains
// transition requests in a loop: Exit the current state, promote the pending
// one, Entry it, and repeat while Entry keeps requesting more. The drain
// completes before the call returns, so chained transitions happen within a
// single tick.
//
// Update must not be called again while a tick is in progress; doing so
// returns ErrReentrantUpdate from the same goroutine and ErrConcurrentUpdate
// from any other. A hook failure abandons the rest of the tick, resets the
// phase to Idle and routes the error through the machine's error mode.
func (m *Machine[C]) Update() error {
	gid := goid.Get()

	var first Phase
	switch {
	case m.current.Load() == nil:
		first = PhaseEntering
	case m.next.Load() != nil:
		first = PhaseExiting
	default:
		first = PhaseUpdating
	}
	if !m.phase.CompareAndSwap(int32(PhaseIdle), int32(first)) {
		if m.tickGID.Load() == gid {
			return ErrReentrantUpdate
		}
		return ErrConcurrentUpdate
	}
	m.tickGID.Store(gid)

	if m.current.Load() == nil && m.next.Load() == nil {
		m.phase.Store(int32(PhaseIdle))
		return ErrNoStartState
	}

	began := time.Now()
	err := m.tick()
	m.phase.Store(int32(PhaseIdle))

	if err != nil && !errors.Is(err, ErrTransitionLimit) {
		err = m.route(err)
	}

	seq := m.ticks.Add(1)
	if m.hooks.OnTick != nil {
		m.hooks.OnTick(TickEvent{
			EventBase: m.eventBase(),
			Seq:       seq,
			Duration:  time.Since(began),
			Err:       err,
		})
	}
	return err
}

// tick runs the protocol for one claimed Update call and returns the first
// hook failure, if any. The caller owns the phase flag before and after.
func (m *Machine[C]) tick() error {
	cur := m.current.Load()
	if cur == nil {
		return m.startup()
	}
	if m.next.Load() == nil {
		m.phase.Store(int32(PhaseUpdating))
		if err := m.invoke(cur, PhaseUpdating); err != nil {
			return m.fail(cur.id, PhaseUpdating, err)
		}
	}
	return m.drain()
}

// startup promotes the designated start state and enters it. On Entry
// failure the machine reverts to not-running with the failed state pending
// again, so a later Update retries the same entry.
func (m *Machine[C]) startup() error {
	pending := m.next.Load()
	m.next.Store(nil)
	m.current.Store(pending)
	m.logger.Debug("starting", "state", pending.id)

	m.phase.Store(int32(PhaseEntering))
	if err := m.invoke(pending, PhaseEntering); err != nil {
		m.current.Store(nil)
		m.next.Store(pending)
		return m.fail(pending.id, PhaseEntering, err)
	}
	m.entered(pending.id)

	if m.next.Load() != nil {
		return m.drain()
	}
	return nil
}

// drain performs pending transitions until none remain. A hook failure
// abandons the remainder; the machine keeps whatever current/next it had at
// the failure point, so the next tick resumes from there.
func (m *Machine[C]) drain() error {
	for steps := 0; ; steps++ {
		pending := m.next.Load()
		if pending == nil {
			return nil
		}
		if m.limit > 0 && steps >= m.limit {
			m.logger.Debug("transition chain aborted", "limit", m.limit, "pending", pending.id)
			return fmt.Errorf("drain to state %q: %w", pending.id, ErrTransitionLimit)
		}

		cur := m.current.Load()
		m.phase.Store(int32(PhaseExiting))
		if err := m.invoke(cur, PhaseExiting); err != nil {
			return m.fail(cur.id, PhaseExiting, err)
		}
		m.exited(cur.id)

		m.next.Store(nil)
		m.current.Store(pending)
		m.logger.Debug("switched state", "from", cur.id, "to", pending.id)

		m.phase.Store(int32(PhaseEntering))
		if err := m.invoke(pending, PhaseEntering); err != nil {
			return m.fail(pending.id, PhaseEntering, err)
		}
		m.entered(pending.id)
	}
}

// invoke runs one hook of b, converting a panic into a *PanicError so the
// failure follows the same path as a returned error.
func (m *Machine[C]) invoke(b *binding[C], phase Phase) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	switch phase {
	case PhaseEntering:
		return b.state.Entry(m)
	case PhaseExiting:
		return b.state.Exit(m)
	default:
		return b.state.Update(m)
	}
}

// fail records a hook failure and hands the error back unchanged.
func (m *Machine[C]) fail(id StateID, phase Phase, err error) error {
	m.logger.Debug("state hook failed", "state", id, "phase", phase.String(), "err", err)
	if m.hooks.OnFailure != nil {
		m.hooks.OnFailure(FailureEvent{
			EventBase: m.eventBase(),
			State:     id,
			Phase:     phase,
			Err:       err,
		})
	}
	return err
}

// route applies the error mode to a hook failure.
func (m *Machine[C]) route(err error) error {
	if m.mode == Capture && m.handler != nil && m.handler(err) {
		m.logger.Debug("error captured by handler", "err", err)
		return nil
	}
	return err
}

func (m *Machine[C]) entered(id StateID) {
	m.logger.Debug("entered state", "state", id)
	if m.hooks.OnStateEnter != nil {
		m.hooks.OnStateEnter(StateEvent{EventBase: m.eventBase(), State: id})
	}
}

func (m *Machine[C]) exited(id StateID) {
	m.logger.Debug("exited state", "state", id)
	if m.hooks.OnStateExit != nil {
		m.hooks.OnStateExit(StateEvent{EventBase: m.eventBase(), State: id})
	}
}

func (m *Machine[C]) eventBase() EventBase {
	return EventBase{Machine: m.name, At: time.Now()}
}
