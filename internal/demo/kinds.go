package demo

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/scenario"
)

// RegisterKinds installs the demo state kinds on a scenario builder.
func RegisterKinds(b *scenario.Builder[*Board]) {
	b.RegisterKind("lamp", LampFactory)
	b.RegisterKind("counter", CounterFactory)
	b.RegisterKind("flaky", FlakyFactory)
}

// LampFactory builds a Lamp from its scenario definition.
func LampFactory(def scenario.StateDef) (espalier.State[*Board], error) {
	var params LampParams
	if err := decodeParams(def.Params, &params); err != nil {
		return nil, err
	}
	return NewLamp(espalier.StateID(def.ID), params), nil
}

// CounterFactory builds a Counter from its scenario definition.
func CounterFactory(def scenario.StateDef) (espalier.State[*Board], error) {
	var params CounterParams
	if err := decodeParams(def.Params, &params); err != nil {
		return nil, err
	}
	return NewCounter(espalier.StateID(def.ID), params), nil
}

// FlakyFactory builds a Flaky state from its scenario definition.
func FlakyFactory(def scenario.StateDef) (espalier.State[*Board], error) {
	var params FlakyParams
	if err := decodeParams(def.Params, &params); err != nil {
		return nil, err
	}
	return NewFlaky(espalier.StateID(def.ID), params), nil
}

// decodeParams maps the free-form params block onto a typed struct.
// Unknown keys are rejected so scenario typos surface at build time.
func decodeParams(params map[string]any, out any) error {
	if params == nil {
		params = map[string]any{}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	return nil
}
