package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/mcpgate/pkg/adapters/stdio"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve JSON-RPC over stdin/stdout",
	Long:  `Reads one JSON-RPC envelope per line from stdin and writes one response per line to stdout. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		gw, err := newGateway(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("serving on stdio", "tools", gw.Catalog().Len())
		err = stdio.New(gw, stdio.WithLogger(logger)).Serve(ctx, os.Stdin, os.Stdout)
		if ctx.Err() != nil {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(stdioCmd)
}
