package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/graph"
)

type node struct {
	espalier.Base[struct{}]
}

func build(t *testing.T, edges map[espalier.StateID][]espalier.StateID) *espalier.Machine[struct{}] {
	t.Helper()
	m := espalier.New(struct{}{})
	for id, tos := range edges {
		n := &node{}
		for _, to := range tos {
			n.RegisterTransition(to)
		}
		if err := m.Register(id, n); err != nil {
			t.Fatalf("Register(%q) = %v", id, err)
		}
	}
	return m
}

func TestMermaid(t *testing.T) {
	tests := []struct {
		name     string
		edges    map[espalier.StateID][]espalier.StateID
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name:  "Header And Edges",
			edges: map[espalier.StateID][]espalier.StateID{"red": {"green"}, "green": {"red"}},
			contains: []string{
				"stateDiagram-v2\n",
				"    red --> green\n",
				"    green --> red\n",
			},
		},
		{
			name:    "Start Marker",
			edges:   map[espalier.StateID][]espalier.StateID{"red": nil},
			overlay: &graph.Overlay{Start: "red"},
			contains: []string{
				"    [*] --> red\n",
			},
		},
		{
			name:  "ID Sanitization Keeps Label",
			edges: map[espalier.StateID][]espalier.StateID{"soft-red": {"phase/two"}, "phase/two": nil},
			contains: []string{
				"    soft_red : soft-red\n",
				"    phase_two : phase/two\n",
				"    soft_red --> phase_two\n",
			},
		},
		{
			name:  "Self Transition",
			edges: map[espalier.StateID][]espalier.StateID{"spin": {"spin"}},
			contains: []string{
				"    spin --> spin\n",
			},
		},
		{
			name:    "Current Highlight",
			edges:   map[espalier.StateID][]espalier.StateID{"red": nil, "green": nil},
			overlay: &graph.Overlay{Current: "green"},
			contains: []string{
				"classDef current",
				"    class green current\n",
			},
		},
		{
			name:  "No Overlay No Styling",
			edges: map[espalier.StateID][]espalier.StateID{"red": nil},
			excludes: []string{
				"classDef",
				"[*]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(t, tt.edges)
			got := graph.Mermaid(m, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Mermaid() = \n%v\nWant substring: %q", got, want)
				}
			}
			for _, stray := range tt.excludes {
				if strings.Contains(got, stray) {
					t.Errorf("Mermaid() = \n%v\nUnwanted substring: %q", got, stray)
				}
			}
		})
	}
}

func TestMermaidDeterministicOrder(t *testing.T) {
	edges := map[espalier.StateID][]espalier.StateID{
		"c": {"a", "b"},
		"b": {"c"},
		"a": {"b"},
	}
	first := graph.Mermaid(build(t, edges), nil)
	for i := 0; i < 5; i++ {
		if got := graph.Mermaid(build(t, edges), nil); got != first {
			t.Fatalf("output varies between runs:\n%v\n---\n%v", first, got)
		}
	}
	if !(strings.Index(first, "a --> b") < strings.Index(first, "b --> c")) {
		t.Errorf("edges not emitted in sorted state order:\n%v", first)
	}
}
