package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/mcpgate/pkg/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog-file...]",
	Short: "Check the configuration and catalog files",
	Long: `Without arguments, loads the configuration and builds the catalog it describes.
With arguments, checks each catalog file on its own. Exits non-zero on the first invalid input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := cfg.BuildCatalog()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Configuration is valid! ✅ (%d tools)\n", cat.Len())
			return nil
		}

		for _, path := range args {
			descriptors, err := registry.LoadFile(path)
			if err != nil {
				return err
			}
			cat, err := registry.New(descriptors...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(out, "%s is valid! ✅ (%d tools)\n", path, cat.Len())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
