// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/a10y/papers-list/internal/kvstore"
	"github.com/a10y/papers-list/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the papers API and front end",
	Long: `Serve starts the HTTP API:

  GET /api/papers       papers in the configured collection
  GET /api/papers/:id   one paper with its notes and tags
  GET /healthz          liveness probe
  GET /metrics          prometheus metrics (server.metrics)

Other paths are served from server.frontend_dir with index.html as the
fallback. SIGINT or SIGTERM drains in-flight requests and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := newStack(ctx, cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		// Rows past their backstop expiry accumulate in sqlite; clear them
		// once at startup.
		if sq, ok := rt.store.(*kvstore.SQLite); ok {
			n, err := sq.Purge(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("purging expired cache rows")
			} else if n > 0 {
				logger.Info().Int64("rows", n).Msg("purged expired cache rows")
			}
		}

		srv := server.New(cfg, rt.deps)

		errCh := make(chan error, 1)
		go func() {
			logger.Info().
				Str("addr", cfg.Server.Addr).
				Str("store", string(cfg.Store.Backend)).
				Dur("ttl", cfg.Cache.TTL).
				Msg("papers-list listening")
			errCh <- srv.Listen(cfg.Server.Addr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8787)")
	serveCmd.Flags().String("frontend-dir", "", "directory of built front-end assets")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.frontend_dir", serveCmd.Flags().Lookup("frontend-dir"))

	rootCmd.AddCommand(serveCmd)
}
