package espalier

import (
	"fmt"
	"slices"
)

// Register binds state to id. Registration is only legal before startup, and
// each id can be bound at most once until Unregister frees it. The machine
// holds exactly one instance per id: every Lookup for the id returns the
// value registered here.
func (m *Machine[C]) Register(id StateID, state State[C]) error {
	if m.Running() {
		return fmt.Errorf("register state %q: %w", id, ErrMachineRunning)
	}
	if _, ok := m.states[id]; ok {
		return fmt.Errorf("register state %q: %w", id, ErrAlreadyRegistered)
	}
	m.states[id] = state
	m.logger.Debug("state registered", "state", id)
	return nil
}

// Unregister removes the state bound to id. Like Register it is only legal
// before startup. A pending transition that already targets the state keeps
// the instance it captured; re-registering the id later binds whatever new
// instance the caller supplies.
func (m *Machine[C]) Unregister(id StateID) error {
	if m.Running() {
		return fmt.Errorf("unregister state %q: %w", id, ErrMachineRunning)
	}
	if _, ok := m.states[id]; !ok {
		return fmt.Errorf("unregister state %q: %w", id, ErrStateNotFound)
	}
	delete(m.states, id)
	m.logger.Debug("state unregistered", "state", id)
	return nil
}

// Lookup returns the state bound to id.
func (m *Machine[C]) Lookup(id StateID) (State[C], error) {
	state, ok := m.states[id]
	if !ok {
		return nil, fmt.Errorf("lookup state %q: %w", id, ErrStateNotFound)
	}
	return state, nil
}

// States returns the registered ids in sorted order.
func (m *Machine[C]) States() []StateID {
	ids := make([]StateID, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
