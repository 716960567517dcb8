package graph

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of a catalog: one subgraph per target host,
// one node per operation, in catalog order.
// Shapes follow the HTTP method:
// - GET: [Rectangle]
// - POST, PUT, PATCH: [/Parallelogram/]
// - DELETE: {{Hexagon}}
// Sensitive operations are styled with the "sensitive" class.
func GenerateMermaid(ops []domain.OperationDescriptor) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var hosts []string
	byHost := make(map[string][]domain.OperationDescriptor)
	for _, op := range ops {
		host := hostOf(op.BaseURL)
		if _, seen := byHost[host]; !seen {
			hosts = append(hosts, host)
		}
		byHost[host] = append(byHost[host], op)
	}

	var sensitive []string
	for _, host := range hosts {
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", sanitizeMermaidID(host), host)
		for _, op := range byHost[host] {
			safeID := sanitizeMermaidID(op.Name)
			opener, closer := "[", "]"
			switch {
			case op.Verb == domain.VerbDelete:
				opener, closer = "{{", "}}"
			case op.Verb.HasBody():
				opener, closer = "[/", "/]"
			}
			fmt.Fprintf(&sb, "        %s%s\"%s <br/> %s %s\"%s\n", safeID, opener, op.Name, op.Verb, op.Template, closer)
			if op.Sensitive {
				sensitive = append(sensitive, safeID)
			}
		}
		sb.WriteString("    end\n")
	}

	if len(sensitive) > 0 {
		sb.WriteString("\n    %% Sensitive operations\n")
		sb.WriteString("    classDef sensitive fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		for _, id := range sensitive {
			fmt.Fprintf(&sb, "    class %s sensitive;\n", id)
		}
	}

	return sb.String()
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
