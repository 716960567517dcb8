package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/mcpgate/internal/presentation/catalog"
	"github.com/aretw0/mcpgate/internal/presentation/graph"
	"github.com/aretw0/mcpgate/internal/presentation/tui"
	"github.com/aretw0/mcpgate/pkg/protocol"
	"github.com/aretw0/mcpgate/pkg/registry"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the configured tools",
	Long: `Prints the operation catalog without calling any target.
Formats: markdown (default, rendered when stdout is a terminal), plain, json (the tools/list
result), yaml (the catalog file format) and mermaid (a flowchart grouped by host).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := cfg.BuildCatalog()
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		out := cmd.OutOrStdout()
		ops := cat.All()

		switch format {
		case "markdown", "md":
			md := catalog.Markdown(ops)
			if tui.IsTerminal(out) {
				if rendered, err := tui.NewRenderer()(md); err == nil {
					md = rendered
				}
			}
			_, err = fmt.Fprint(out, md)
		case "plain":
			_, err = fmt.Fprint(out, catalog.Plain(ops))
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			err = enc.Encode(protocol.NewListToolsResult(ops))
		case "yaml":
			var data []byte
			if data, err = registry.Marshal(ops); err == nil {
				_, err = out.Write(data)
			}
		case "mermaid":
			_, err = fmt.Fprint(out, graph.GenerateMermaid(ops))
		default:
			return fmt.Errorf("unknown format %q", format)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.Flags().StringP("format", "f", "markdown", "Output format (markdown, plain, json, yaml, mermaid)")
}
