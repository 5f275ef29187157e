package espalier

// StateID identifies a registered state. IDs are stable keys chosen by the
// host; the engine never derives them from the state value itself.
type StateID string

// State is the contract a machine state implements. Entry runs when the
// machine enters the state, Update runs once per tick while it is current,
// and Exit runs when the machine leaves it. Each hook receives the owning
// machine so it can reach the shared context and request transitions.
//
// The destination set managed by RegisterTransition is advisory metadata for
// the state author: the machine never consults it when performing a
// transition, so an undeclared destination succeeds silently. It exists so
// hosts can declare, inspect and diagram the intended topology.
type State[C any] interface {
	Entry(m *Machine[C]) error
	Update(m *Machine[C]) error
	Exit(m *Machine[C]) error

	RegisterTransition(to StateID)
	UnregisterTransition(to StateID)
	HasTransition(to StateID) bool
}

// Base is a ready-made State with no-op hooks and a lazily initialized
// destination set. Embed it and override the hooks you need:
//
//	type Blinking struct {
//		espalier.Base[*Board]
//	}
//
//	func (s *Blinking) Update(m *espalier.Machine[*Board]) error {
//		m.Context().Toggle()
//		return nil
//	}
//
// The zero value is ready to use.
type Base[C any] struct {
	destinations map[StateID]struct{}
}

// Entry implements State with no effect.
func (b *Base[C]) Entry(*Machine[C]) error { return nil }

// Update implements State with no effect.
func (b *Base[C]) Update(*Machine[C]) error { return nil }

// Exit implements State with no effect.
func (b *Base[C]) Exit(*Machine[C]) error { return nil }

// RegisterTransition records to as an intended destination.
func (b *Base[C]) RegisterTransition(to StateID) {
	if b.destinations == nil {
		b.destinations = make(map[StateID]struct{})
	}
	b.destinations[to] = struct{}{}
}

// UnregisterTransition removes to from the intended destinations.
func (b *Base[C]) UnregisterTransition(to StateID) {
	delete(b.destinations, to)
}

// HasTransition reports whether to was recorded as a destination.
func (b *Base[C]) HasTransition(to StateID) bool {
	_, ok := b.destinations[to]
	return ok
}
