package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier"
)

// Overlay carries dynamic machine state to highlight on the diagram.
type Overlay struct {
	Start   espalier.StateID
	Current espalier.StateID
}

// Mermaid renders the declared transition topology of m as a Mermaid
// stateDiagram-v2 document. Declared destinations are advisory at
// runtime, so the diagram shows intent rather than an enforced table.
func Mermaid[C any](m *espalier.Machine[C], overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	if overlay != nil && overlay.Start != "" {
		sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeID(string(overlay.Start))))
	}

	ids := m.States()
	for _, id := range ids {
		safeID := sanitizeID(string(id))
		if safeID != string(id) {
			// Keep the original spelling visible as the display label.
			sb.WriteString(fmt.Sprintf("    %s : %s\n", safeID, id))
		}

		state, err := m.Lookup(id)
		if err != nil {
			continue
		}
		for _, to := range ids {
			if state.HasTransition(to) {
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeID(string(to))))
			}
		}
	}

	if overlay != nil && overlay.Current != "" {
		sb.WriteString("\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")
		sb.WriteString(fmt.Sprintf("    class %s current\n", sanitizeID(string(overlay.Current))))
	}

	return sb.String()
}

func sanitizeID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
