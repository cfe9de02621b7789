package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/viktori/matteray/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Endpoints:
  GET  /healthz        liveness probe
  GET  /version        build information
  GET  /v1/ops         supported operations
  POST /v1/ops/{op}    run one operation
  POST /v1/batch       run several operations concurrently`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, closeCache := c.newRunner(cmd.Context())
			defer closeCache()

			srv := server.New(runner, c.Logger, server.Options{
				Addr:         cfg.Addr,
				ReadTimeout:  time.Duration(cfg.ReadTimeout),
				WriteTimeout: time.Duration(cfg.WriteTimeout),
				MaxBodyBytes: cfg.MaxBodyBytes,
				Concurrency:  c.Config.Pipeline.Concurrency,
			})

			printInfo("Serving on %s (cache: %s)", cfg.Addr, c.cacheBackend())
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// cacheBackend names the backend in effect for this invocation.
func (c *CLI) cacheBackend() string {
	if c.noCache {
		return "none"
	}
	return c.Config.Cache.Backend
}
