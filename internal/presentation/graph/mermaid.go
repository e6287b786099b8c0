package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/kopye/pkg/domain"
)

// GraphOverlay marks questions of a stored run on the graph.
type GraphOverlay struct {
	Answered []string
}

// GenerateMermaid produces a Mermaid flowchart of the question dependencies.
// Shapes follow the question type:
// - Confirm: {Rhombus}
// - Select/MultiSelect: [/Parallelogram/]
// - Text/Paragraph: [Rectangle]
// Condition and All edges are solid, Any edges are dotted; every edge carries its predicate.
// When order is given, labels are prefixed with the position of the question in it.
func GenerateMermaid(qs *domain.QuestionSet, order []string, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	position := make(map[string]int, len(order))
	for i, id := range order {
		position[id] = i + 1
	}

	for _, q := range qs.All() {
		safeID := sanitizeMermaidID(q.ID)

		opener, closer := "[", "]"
		switch q.Type {
		case domain.QuestionConfirm:
			opener, closer = "{", "}"
		case domain.QuestionSelect, domain.QuestionMultiSelect:
			opener, closer = "[/", "/]"
		}

		label := q.ID
		if n, ok := position[q.ID]; ok {
			label = fmt.Sprintf("%d. %s", n, q.ID)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)
	}

	for _, q := range qs.All() {
		if q.DependsOn == nil {
			continue
		}
		safeTo := sanitizeMermaidID(q.ID)
		for _, p := range q.DependsOn.Predicates {
			safeFrom := sanitizeMermaidID(p.Question)
			text := strings.ReplaceAll(p.Expected, "\"", "'")

			var arrow string
			switch q.DependsOn.Kind {
			case domain.DependsAny:
				arrow = fmt.Sprintf("-. \"any: %s\" .->", text)
			case domain.DependsAll:
				arrow = fmt.Sprintf("-- \"all: %s\" -->", text)
			default:
				arrow = fmt.Sprintf("-- \"%s\" -->", text)
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", safeFrom, arrow, safeTo)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both themes.
		sb.WriteString("    classDef answered fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Answered {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s answered;\n", safeID)
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
