package espalier

import "time"

// EventBase carries the fields shared by every observation event.
type EventBase struct {
	// Machine is the emitting machine's name.
	Machine string
	// At is when the event fired.
	At time.Time
}

// StateEvent reports a state boundary crossing.
type StateEvent struct {
	EventBase
	State StateID
}

// TickEvent reports a completed Update call.
type TickEvent struct {
	EventBase
	// Seq numbers ticks from 1. Calls rejected by the guard or by
	// ErrNoStartState do not consume a sequence number.
	Seq uint64
	// Duration is how long the tick took.
	Duration time.Duration
	// Err is what Update is returning, nil when the tick succeeded or the
	// capture handler absorbed the failure.
	Err error
}

// FailureEvent reports a state hook failure. It fires before error-mode
// routing, so failures a capture handler later absorbs are still observable.
type FailureEvent struct {
	EventBase
	State StateID
	// Phase names the hook that failed.
	Phase Phase
	Err   error
}

// Hooks bundles the optional observation callbacks a machine invokes while
// ticking. All callbacks run synchronously on the ticking goroutine.
// OnStateEnter, OnStateExit and OnFailure run inside the tick, where calling
// Update trips the reentrancy guard; OnTick runs after the tick has wound
// down.
type Hooks struct {
	// OnStateEnter fires after a state's Entry hook succeeds.
	OnStateEnter func(StateEvent)
	// OnStateExit fires after a state's Exit hook succeeds.
	OnStateExit func(StateEvent)
	// OnTick fires at the end of every counted Update call.
	OnTick func(TickEvent)
	// OnFailure fires whenever a state hook returns an error or panics.
	OnFailure func(FailureEvent)
}

// MergeHooks combines several hook sets into one that fans every event out
// to each callback, in argument order. Useful when logging and metrics both
// want the same events.
func MergeHooks(hooks ...Hooks) Hooks {
	var merged Hooks
	for _, h := range hooks {
		merged.OnStateEnter = fanOut(merged.OnStateEnter, h.OnStateEnter)
		merged.OnStateExit = fanOut(merged.OnStateExit, h.OnStateExit)
		merged.OnTick = fanOut(merged.OnTick, h.OnTick)
		merged.OnFailure = fanOut(merged.OnFailure, h.OnFailure)
	}
	return merged
}

func fanOut[E any](a, b func(E)) func(E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
