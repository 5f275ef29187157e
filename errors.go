package espalier

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by machine operations. State hook errors are not
// on this list: whatever a state's Entry, Update or Exit returns reaches the
// caller (or the capture handler) as the very value the hook produced.
var (
	// ErrMachineRunning rejects mutations that are only legal before the
	// machine has started.
	ErrMachineRunning = errors.New("machine is already running")

	// ErrAlreadyRegistered rejects a second Register for an id.
	ErrAlreadyRegistered = errors.New("state already registered")

	// ErrStateNotFound reports an id with no registered state.
	ErrStateNotFound = errors.New("state not registered")

	// ErrNoStartState reports Update on a machine with no designated start
	// state.
	ErrNoStartState = errors.New("no start state designated")

	// ErrReentrantUpdate reports Update called again from inside a running
	// tick, for example from a state hook.
	ErrReentrantUpdate = errors.New("update called again while a tick is in progress")

	// ErrConcurrentUpdate reports Update called from a goroutine other than
	// the one currently running a tick.
	ErrConcurrentUpdate = errors.New("update called from another goroutine while a tick is in progress")

	// ErrTransitionLimit reports a transition chain that exceeded the
	// machine's configured per-tick limit. The pending transition stays
	// queued and the next tick resumes the drain.
	ErrTransitionLimit = errors.New("transition chain exceeded limit")
)

// PanicError carries a panic recovered from a state hook, with the stack
// captured at the panic site. Update surfaces it like any other hook error,
// so a panicking state follows the machine's error mode instead of tearing
// down the host.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("state hook panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error, so errors.Is
// and errors.As see through the recovery.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
