package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/subtrack/pkg/config"
)

// NewRedis returns nil when redis.addr is empty; consumers then fall back to
// in-process caching only.
func NewRedis(lc fx.Lifecycle, l *zap.SugaredLogger, cfg *cfgpkg.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		l.Infow("redis disabled, using in-process caches only")
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// the rate cache tolerates redis being down; keep the client so it can recover
		l.Warnw("redis ping failed", "addr", cfg.Redis.Addr, "err", err)
	} else {
		l.Infow("connected to redis", "addr", cfg.Redis.Addr)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Infow("closing redis client")
			return client.Close()
		},
	})
	return client, nil
}

var Module = fx.Options(
	fx.Provide(NewRedis),
)
