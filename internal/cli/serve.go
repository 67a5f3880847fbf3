package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ReFLEX-Lab-York/trafficMISBP/internal/server"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/cache"
)

// serverKeyPrefix keeps server cache entries apart from CLI runs that share
// a Redis instance.
const serverKeyPrefix = "server:"

// serveCommand creates the serve command, which exposes the analysis over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var cf cacheFlags
	var cfg server.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Long: `Serve starts an HTTP server exposing analyze, batch and render endpoints.
Request bodies use the JSON intersection format. The server stops
gracefully on interrupt.`,
		Example: `  trafficmis serve --addr :9000
  trafficmis serve --cache-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newScopedRunner(cmd.Context(), cf, cache.NewScopedKeyer(nil, serverKeyPrefix))
			if err != nil {
				return err
			}
			defer runner.Close()

			err = server.New(runner, c.Logger, cfg).Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "largest accepted request body in bytes")
	cmd.Flags().IntVar(&cfg.MaxBatch, "max-batch", server.DefaultMaxBatch, "most intersections per batch request")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "concurrent analyses per batch request (default GOMAXPROCS)")
	cf.register(cmd)

	return cmd
}

