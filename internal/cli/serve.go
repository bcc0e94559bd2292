package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/structogram/pkg/cache"
	"github.com/matzehuels/structogram/pkg/pipeline"
	"github.com/matzehuels/structogram/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the structogram HTTP service",
		Long: `Run an HTTP service that renders posted class models.

Routes:
  GET  /healthz          liveness and build information
  GET  /v1/styles        available visual styles
  POST /v1/methods       list the methods of a class
  POST /v1/structogram   render one method

Results are cached in the configured backend. Use --redis to share the
cache between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache, e.g. redis://localhost:6379/0")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	opts := cfg.Cache
	switch {
	case noCache:
		opts.Backend = cache.BackendNone
	case redisURL != "":
		opts.Backend = cache.BackendRedis
		opts.RedisURL = redisURL
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := cache.Open(ctx, opts)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Server.KeyPrefix)
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	printInfo("Listening on %s", StyleHighlight.Render(cfg.Server.Addr))
	printDetail("cache: %s", opts.Backend)
	return server.New(runner, cfg, loggerFromContext(ctx)).ListenAndServe(ctx, cfg.Server.Addr)
}
