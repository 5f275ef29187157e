package espalier

// Phase is the lifecycle step a machine is currently executing. A machine is
// Idle between ticks; the other phases are observable from inside state
// hooks and observation callbacks, or from another goroutine peeking while a
// tick runs.
type Phase int32

const (
	// PhaseIdle means no tick is in progress.
	PhaseIdle Phase = iota
	// PhaseEntering means an Entry hook is running.
	PhaseEntering
	// PhaseUpdating means an Update hook is running.
	PhaseUpdating
	// PhaseExiting means an Exit hook is running.
	PhaseExiting
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEntering:
		return "entering"
	case PhaseUpdating:
		return "updating"
	case PhaseExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// ErrorMode selects what Update does with an error produced by a state hook.
// Engine errors such as ErrNoStartState or the reentrancy guard rejections
// are never subject to the mode; they always reach the caller.
type ErrorMode int

const (
	// Propagate returns hook errors to the Update caller unchanged. This is
	// the default.
	Propagate ErrorMode = iota
	// Capture offers hook errors to the machine's error handler first and
	// only returns them when the handler declines or none is installed.
	Capture
)

// String returns the lowercase mode name.
func (m ErrorMode) String() string {
	switch m {
	case Propagate:
		return "propagate"
	case Capture:
		return "capture"
	default:
		return "unknown"
	}
}
