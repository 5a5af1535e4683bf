package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		rateLimit int
		ttl       time.Duration
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv, err := server.New(
				server.WithRunner(runner),
				server.WithLogger(c.Logger),
				server.WithRateLimit(rateLimit, time.Minute),
				server.WithDocumentTTL(ttl),
			)
			if err != nil {
				return err
			}
			printInfo("Listening on %s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 60, "requests per minute per client IP")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "how long rendered documents stay fetchable")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
