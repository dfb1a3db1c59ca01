package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"example.com/orderflow/internal/config"
	"example.com/orderflow/internal/infra/events"
	"example.com/orderflow/internal/infra/logging"
	"example.com/orderflow/internal/infra/persistence"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the configured store, cache and broker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logging.New(cfg.Logging, cmd.ErrOrStderr())

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()

			status := map[string]string{}
			failed := false
			check := func(name string, err error) {
				if err != nil {
					status[name] = err.Error()
					failed = true
					return
				}
				status[name] = "ok"
			}

			repos, err := persistence.Open(ctx, cfg.Store)
			if err == nil {
				repos.Close()
			}
			check(cfg.Store.Driver, err)

			if cfg.Cache.RedisAddr != "" {
				rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
				check("redis", rdb.Ping(ctx).Err())
				_ = rdb.Close()
			}
			if cfg.Events.AMQPURL != "" {
				pub, err := events.Dial(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
				if err == nil {
					_ = pub.Close()
				}
				check("rabbitmq", err)
			}

			if err := writeJSON(cmd.OutOrStdout(), status); err != nil {
				return err
			}
			if failed {
				return fmt.Errorf("health check failed")
			}
			return nil
		},
	}
}
