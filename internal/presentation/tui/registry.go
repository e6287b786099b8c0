package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/kopye/internal/blueprint"
)

// RegistryMarkdown renders the blueprints of a registry as a Markdown table.
func RegistryMarkdown(source string, entries []blueprint.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Blueprints in `%s`\n\n", source)
	if len(entries) == 0 {
		sb.WriteString("_No blueprints declared._\n")
		return sb.String()
	}

	sb.WriteString("| Name | Path | Description |\n")
	sb.WriteString("|------|------|-------------|\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", cell(e.Name), e.Path, cell(e.Description))
	}
	return sb.String()
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
