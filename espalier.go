package espalier

import (
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// Machine drives a set of registered states over a shared context of type C.
// Build one with New, populate the registry with Register, designate a start
// state with SetStartState and then call Update on a cadence of your
// choosing; pkg/runner ships a ready-made loop.
//
// A Machine is not safe for concurrent use. One goroutine drives Update to
// completion before the next call begins; violations are detected and
// reported, not absorbed. The read-only accessors (Current, Next, Phase,
// Running, Ticks) may be called from other goroutines, for example by a
// status endpoint.
type Machine[C any] struct {
	name    string
	context C
	logger  *slog.Logger
	hooks   Hooks

	mode    ErrorMode
	handler func(error) bool
	limit   int

	states  map[StateID]State[C]
	current atomic.Pointer[binding[C]]
	next    atomic.Pointer[binding[C]]

	phase   atomic.Int32
	tickGID atomic.Int64
	ticks   atomic.Uint64
}

// binding pairs a state instance with the id it was registered under, so a
// current or pending state survives later registry changes.
type binding[C any] struct {
	id    StateID
	state State[C]
}

// Option configures a Machine at construction time.
type Option func(*options)

type options struct {
	name    string
	logger  *slog.Logger
	hooks   Hooks
	mode    ErrorMode
	handler func(error) bool
	limit   int
}

// WithName labels the machine in logs, observation events and metrics. When
// omitted, a short random name is generated.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the machine's logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks installs observation callbacks. Combine several sets with
// MergeHooks.
func WithHooks(hooks Hooks) Option {
	return func(o *options) { o.hooks = hooks }
}

// WithErrorMode sets the initial error mode. The default is Propagate.
func WithErrorMode(mode ErrorMode) Option {
	return func(o *options) { o.mode = mode }
}

// WithErrorHandler installs the capture handler at construction time. See
// SetErrorHandler for the contract.
func WithErrorHandler(handler func(error) bool) Option {
	return func(o *options) { o.handler = handler }
}

// WithTransitionLimit bounds how many chained transitions a single tick may
// drain before Update gives up with ErrTransitionLimit. Zero or negative
// means unbounded, which is the default and matches two states handing
// control back and forth across ticks; the limit exists to catch states
// that chain forever within one tick.
func WithTransitionLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// New builds an idle machine around the shared context. The context value is
// handed to states verbatim; pointer types are the norm so states can mutate
// shared data in place.
func New[C any](context C, opts ...Option) *Machine[C] {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = "machine-" + uuid.NewString()[:8]
	}
	return &Machine[C]{
		name:    o.name,
		context: context,
		logger:  o.logger.With("machine", o.name),
		hooks:   o.hooks,
		mode:    o.mode,
		handler: o.handler,
		limit:   o.limit,
		states:  make(map[StateID]State[C]),
	}
}

// Name returns the machine's label.
func (m *Machine[C]) Name() string { return m.name }

// Context returns the shared context the machine was built around.
func (m *Machine[C]) Context() C { return m.context }

// Phase returns the lifecycle phase the machine is currently executing.
func (m *Machine[C]) Phase() Phase { return Phase(m.phase.Load()) }

// Running reports whether startup has completed, that is, whether a current
// state exists.
func (m *Machine[C]) Running() bool { return m.current.Load() != nil }

// Current returns the id of the current state, or "" before startup.
func (m *Machine[C]) Current() StateID {
	if b := m.current.Load(); b != nil {
		return b.id
	}
	return ""
}

// Next returns the id of the pending transition target, or "" when none is
// pending. Before startup this is the designated start state.
func (m *Machine[C]) Next() StateID {
	if b := m.next.Load(); b != nil {
		return b.id
	}
	return ""
}

// Ticks returns how many Update calls have run the tick protocol.
func (m *Machine[C]) Ticks() uint64 { return m.ticks.Load() }

// ErrorMode returns the active error mode.
func (m *Machine[C]) ErrorMode() ErrorMode { return m.mode }

// SetErrorMode switches the error mode. States may call this from their own
// hooks; the new mode governs failures raised after the call.
func (m *Machine[C]) SetErrorMode(mode ErrorMode) {
	m.mode = mode
}

// SetErrorHandler installs the capture handler, or clears it when handler is
// nil. Under Capture, the handler receives each hook error exactly as the
// state produced it; returning true absorbs the error and the corresponding
// Update returns nil. Returning false, or having no handler installed,
// propagates the error to the Update caller: the machine never silently
// drops a failure. The handler runs on the ticking goroutine after the
// tick's phase has been reset to Idle.
func (m *Machine[C]) SetErrorHandler(handler func(error) bool) {
	m.handler = handler
}
