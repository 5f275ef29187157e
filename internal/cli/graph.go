package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/demo"
	"github.com/aretw0/espalier/internal/graph"
	"github.com/aretw0/espalier/internal/logging"
)

// Graph prints the declared transition topology of a scenario as a
// Mermaid state diagram.
func Graph(scenarioPath string) error {
	board := demo.NewBoard(io.Discard)
	m, sc, err := buildMachine(scenarioPath, board, logging.NewNop(), espalier.Hooks{})
	if err != nil {
		return err
	}

	fmt.Print(graph.Mermaid(m, &graph.Overlay{Start: espalier.StateID(sc.Start)}))
	return nil
}
