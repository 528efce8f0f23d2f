package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/logicsim/pkg/circuit"
	"github.com/aretw0/logicsim/pkg/domain"
)

// GraphOverlay contains trace data to highlight on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFromTrace marks every traced state as visited and the last one as current.
func OverlayFromTrace(trace domain.Trace) *GraphOverlay {
	o := &GraphOverlay{VisitedStates: trace.Strings()}
	if len(o.VisitedStates) > 0 {
		o.CurrentState = o.VisitedStates[len(o.VisitedStates)-1]
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the counter's state transitions.
// Every defined state of the counter's width is a node:
// - Initial: ((Circle))
// - Default: [Rectangle]
// Edges carry the J/K inputs of each flip-flop in order. States the rule does not map
// are drawn without outgoing edges.
func GenerateMermaid(c *circuit.Counter, overlay *GraphOverlay) (string, error) {
	width := c.Width()
	if width == 0 {
		return "", fmt.Errorf("counter %q has no flip-flops", c.Name)
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	states := allStates(width)
	for _, s := range states {
		id := stateID(s.String())
		opener, closer := "[", "]"
		if s.Equal(c.Initial) {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, s, closer))
	}

	for _, s := range states {
		next, inputs, err := c.Step(s)
		if errors.Is(err, domain.ErrUnmappedState) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("state %s: %w", s, err)
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", stateID(s.String()), inputLabel(inputs), stateID(next.String())))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, st := range overlay.VisitedStates {
			id := stateID(st)
			if !seen[id] && st != "" {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", id))
			}
		}
		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", stateID(overlay.CurrentState)))
		}
	}

	return sb.String(), nil
}

// inputLabel renders inputs as "JK JK ..." pairs, one per flip-flop.
func inputLabel(in []domain.JK) string {
	parts := make([]string, len(in))
	for i, jk := range in {
		parts[i] = jk.J.String() + jk.K.String()
	}
	return strings.Join(parts, " ")
}

func stateID(s string) string {
	return "s" + strings.ReplaceAll(s, "x", "X")
}

func allStates(width int) []domain.State {
	out := make([]domain.State, 0, 1<<width)
	for v := 0; v < 1<<width; v++ {
		s := domain.ZeroState(width)
		for i := 0; i < width; i++ {
			if v&(1<<(width-1-i)) != 0 {
				s[i] = domain.One
			}
		}
		out = append(out, s)
	}
	return out
}
