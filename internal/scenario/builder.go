package scenario

import (
	"fmt"

	"github.com/aretw0/espalier"
)

// Factory builds a state instance from its definition. Implementations
// decode def.Params for the keys they understand; internal/demo uses
// mapstructure for that.
type Factory[C any] func(def StateDef) (espalier.State[C], error)

// Builder maps scenario kinds to factories and assembles machines from
// validated documents.
type Builder[C any] struct {
	kinds map[string]Factory[C]
}

// NewBuilder returns a builder with no kinds registered.
func NewBuilder[C any]() *Builder[C] {
	return &Builder[C]{kinds: make(map[string]Factory[C])}
}

// RegisterKind binds a factory to a kind name, replacing any previous
// binding.
func (b *Builder[C]) RegisterKind(kind string, factory Factory[C]) {
	b.kinds[kind] = factory
}

// Build constructs every state the document declares, registers them on the
// machine, records the advisory transitions, designates the start state and
// applies the document's error mode. The machine must be fresh: ids that
// collide with already registered states fail the build.
func (b *Builder[C]) Build(sc *Scenario, m *espalier.Machine[C]) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	for _, def := range sc.States {
		factory, ok := b.kinds[def.Kind]
		if !ok {
			return &BuildError{
				Field:  "states",
				Reason: fmt.Sprintf("unknown kind %q for state %q", def.Kind, def.ID),
			}
		}
		state, err := factory(def)
		if err != nil {
			return fmt.Errorf("build state %q: %w", def.ID, err)
		}
		for _, to := range def.Transitions {
			state.RegisterTransition(espalier.StateID(to))
		}
		if err := m.Register(espalier.StateID(def.ID), state); err != nil {
			return err
		}
	}
	if err := m.SetStartState(espalier.StateID(sc.Start)); err != nil {
		return err
	}
	m.SetErrorMode(sc.Mode())
	return nil
}
