package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xmlmerge/internal/server"
	"github.com/matzehuels/xmlmerge/pkg/cache"
	"github.com/matzehuels/xmlmerge/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	redisAddr     string // empty uses the local file cache
	redisPassword string
	redisDB       int
	prefix        string // cache key namespace
	noCache       bool
}

// serveCommand creates the serve command, which exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", prefix: appName + ":"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transform API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cc, err := c.serverCache(cmd, opts)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, opts.prefix), logger)
			defer runner.Close()

			printInfo("Listening on %s", StyleHighlight.Render(opts.addr))
			return server.NewServer(opts.addr, runner, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.prefix, "cache-prefix", opts.prefix, "cache key prefix")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) serverCache(cmd *cobra.Command, opts serveOpts) (cache.Cache, error) {
	if opts.noCache || opts.redisAddr == "" {
		return newCache(opts.noCache)
	}
	cc, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
		Addr:        opts.redisAddr,
		Password:    opts.redisPassword,
		DB:          opts.redisDB,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	printDetail("Cache: redis %s", opts.redisAddr)
	return cc, nil
}
