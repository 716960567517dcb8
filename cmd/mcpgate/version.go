package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/mcpgate"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mcpgate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mcpgate version %s\n", strings.TrimSpace(mcpgate.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
