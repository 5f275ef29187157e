package scenario

import (
	"errors"
	"testing"

	"github.com/aretw0/espalier"
)

type env struct{}

// stub is a no-op state that remembers the definition it was built from.
type stub struct {
	espalier.Base[*env]
	def StateDef
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder[*env]()
	b.RegisterKind("lamp", func(def StateDef) (espalier.State[*env], error) {
		return &stub{def: def}, nil
	})

	sc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	m := espalier.New(&env{}, espalier.WithName(sc.Name))
	if err := b.Build(sc, m); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := len(m.States()); got != 2 {
		t.Fatalf("Expected 2 registered states, got %d", got)
	}
	if got := m.Next(); got != "red" {
		t.Errorf("Expected start 'red' pending, got %q", got)
	}
	if got := m.ErrorMode(); got != espalier.Capture {
		t.Errorf("Expected capture mode from the document, got %s", got)
	}

	red, err := m.Lookup("red")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !red.HasTransition("green") {
		t.Error("Expected advisory transition red -> green to be recorded")
	}
	if red.HasTransition("red") {
		t.Error("Did not expect an advisory self transition")
	}

	rs, ok := red.(*stub)
	if !ok {
		t.Fatalf("Expected a stub instance, got %T", red)
	}
	if rs.def.Params["next"] != "green" {
		t.Errorf("Expected params to reach the factory, got %v", rs.def.Params)
	}
}

func TestBuilder_UnknownKind(t *testing.T) {
	b := NewBuilder[*env]()

	sc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	err = b.Build(sc, espalier.New(&env{}))
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("Expected a BuildError, got %v", err)
	}
}

func TestBuilder_FactoryFailurePropagates(t *testing.T) {
	boom := errors.New("boom")
	b := NewBuilder[*env]()
	b.RegisterKind("lamp", func(def StateDef) (espalier.State[*env], error) {
		return nil, boom
	})

	sc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if err := b.Build(sc, espalier.New(&env{})); !errors.Is(err, boom) {
		t.Fatalf("Expected the factory error, got %v", err)
	}
}
