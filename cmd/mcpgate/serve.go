package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/mcpgate"
	"github.com/aretw0/mcpgate/internal/presentation/tui"
	httpadapter "github.com/aretw0/mcpgate/pkg/adapters/http"
	"github.com/aretw0/mcpgate/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves JSON-RPC on POST /mcp, with GET /health, GET /tools and GET /metrics alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		gw, err := newGateway(cfg, logger, metrics.Hooks())
		if err != nil {
			return err
		}

		var draining atomic.Bool
		opts := []httpadapter.Option{
			httpadapter.WithLogger(logger),
			httpadapter.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
			httpadapter.WithReadiness(func() error {
				if draining.Load() {
					return errors.New("shutting down")
				}
				return nil
			}),
		}
		if cfg.Server.Metrics {
			opts = append(opts, httpadapter.WithMetrics(observability.Handler(reg)))
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           httpadapter.NewHandler(gw, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if tui.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr, strings.TrimSpace(mcpgate.Version))
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting mcpgate server", "addr", srv.Addr, "tools", gw.Catalog().Len(), "timeout", gw.Timeout())
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			return err
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			draining.Store(true)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "err", err)
				return srv.Close()
			}
			logger.Info("mcpgate server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
