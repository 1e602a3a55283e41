package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rana718/fakeshop/internal/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve products, users and orders over a read-only HTTP API",
	Long: `
Endpoints:
  GET /                                      welcome
  GET /products?date_updated=YYYY-MM-DD
  GET /users?start_date=&end_date=
  GET /orders?order_id=&start_date=&end_date=
  GET /stats
  GET /metrics                               prometheus

Responses are cached in redis when the variable named by api.redis_url_env
is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		port := a.cfg.API.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		opts := api.Options{Port: port, CacheTTL: a.cfg.API.CacheTTL}
		if url := a.cfg.GetRedisURL(); url != "" {
			cache, err := api.NewRedisCache(ctx, url)
			if err != nil {
				return err
			}
			a.closers = append(a.closers, cache.Close)
			opts.Cache = cache
			color.Cyan("🗄️  Response cache enabled (ttl %s)", a.cfg.API.CacheTTL)
		}

		srv := api.NewServer(a.store, opts, a.metrics, a.log)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()
		color.Green("🚀 fakeshop API listening on http://localhost:%d", port)

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on (default api.port)")
}
