package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/mcpgate"
	"github.com/aretw0/mcpgate/internal/config"
	"github.com/aretw0/mcpgate/internal/logging"
	"github.com/aretw0/mcpgate/pkg/domain"
	"github.com/aretw0/mcpgate/pkg/observability"
)

var rootCmd = &cobra.Command{
	Use:   "mcpgate",
	Short: "mcpgate exposes REST APIs as MCP tools",
	Long: `mcpgate is a JSON-RPC gateway speaking the Model Context Protocol.
Every tool it lists is a declared REST operation; calling a tool validates the
arguments against the declaration and performs one bounded outbound HTTP call.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var f *domain.Failure
		if errors.As(err, &f) && len(f.Detail) > 0 {
			if problems, ok := f.Detail[domain.KeyErrors].([]string); ok {
				for _, p := range problems {
					fmt.Fprintf(os.Stderr, "  - %s\n", p)
				}
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
}

// loadConfig reads the configuration and applies the persistent flags on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	return cfg, logging.New(level, cfg.Log.Format), nil
}

// newGateway wires the request core from cfg.
func newGateway(cfg config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*mcpgate.Gateway, error) {
	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return nil, err
	}
	hooks = append(hooks, observability.LogHooks(logger))
	return mcpgate.New(catalog,
		mcpgate.WithTimeout(cfg.Upstream.Timeout),
		mcpgate.WithGuard(cfg.BuildGuard()),
		mcpgate.WithLogger(logger),
		mcpgate.WithLifecycleHooks(domain.CombineHooks(hooks...)),
	)
}
