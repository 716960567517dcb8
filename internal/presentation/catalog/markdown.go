// Package catalog renders an operation catalog for people.
package catalog

import (
	"fmt"
	"strings"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// Markdown renders ops as a markdown document with one table row per operation.
func Markdown(ops []domain.OperationDescriptor) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Tools (%d)\n\n", len(ops))
	sb.WriteString("| Tool | Method | Endpoint | Required | Optional | Description |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, op := range ops {
		name := "`" + op.Name + "`"
		if op.Sensitive {
			name += " ⚠"
		}
		fmt.Fprintf(&sb, "| %s | %s | `%s%s` | %s | %s | %s |\n",
			name, op.Verb, op.BaseURL, op.Template,
			params(op.Required), params(op.Optional), cell(op.Description))
	}

	if sensitive := countSensitive(ops); sensitive > 0 {
		fmt.Fprintf(&sb, "\n⚠ %d sensitive operation(s) are subject to the guard policy.\n", sensitive)
	}
	return sb.String()
}

// Plain renders ops as one line per operation, for pipes and scripts.
func Plain(ops []domain.OperationDescriptor) string {
	var sb strings.Builder
	for _, op := range ops {
		fmt.Fprintf(&sb, "%s\t%s\t%s%s\n", op.Name, op.Verb, op.BaseURL, op.Template)
	}
	return sb.String()
}

func params(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func countSensitive(ops []domain.OperationDescriptor) int {
	n := 0
	for _, op := range ops {
		if op.Sensitive {
			n++
		}
	}
	return n
}
