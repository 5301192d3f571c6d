package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hanoitower/internal/server"
	"github.com/matzehuels/hanoitower/pkg/observability"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	maxDisks int
	maxRuns  int
	noCache  bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver and live runs over HTTP",
		Long: `Serve starts an HTTP server.

Endpoints:
  GET    /api/moves?disks=N          move list
  GET    /api/timeline?disks=N       timed motion as JSON
  GET    /animation.svg?disks=N      animated SVG (loop=true to repeat)
  GET    /recursion.svg?disks=N      recursion tree
  POST   /api/runs                   start a live run {"disks": N, "speed": S}
  GET    /api/runs/{id}/events       server-sent move events
  DELETE /api/runs/{id}              cancel a live run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().IntVar(&opts.maxDisks, "max-disks", 0, "largest disk count a request may ask for (default from config)")
	cmd.Flags().IntVar(&opts.maxRuns, "max-runs", server.DefaultMaxRuns, "concurrent live runs")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, o serveOpts) error {
	runner, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	stats := observability.NewStats()
	observability.SetPipelineHooks(stats)
	observability.SetCacheHooks(stats)
	defer observability.Reset()

	addr := o.addr
	if addr == "" {
		addr = c.cfg.Server.Addr
	}
	maxDisks := o.maxDisks
	if maxDisks == 0 {
		maxDisks = c.cfg.Server.MaxDisks
	}

	srv := server.New(runner, c.Logger, server.Options{
		MaxDisks:       maxDisks,
		DefaultDisks:   c.cfg.Disks,
		RequestTimeout: c.cfg.Server.RequestTimeout.Duration,
		MaxRuns:        o.maxRuns,
		Pipeline:       c.baseOptions(0),
		Stats:          stats,
	})

	printSuccess("Serving on %s", StyleLink.Render(displayURL(addr)))
	printDetail("cache: %s", c.cfg.Cache.Backend)
	return srv.ListenAndServe(ctx, addr)
}

// displayURL turns a listen address into a clickable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
