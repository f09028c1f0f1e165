package currency

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fatflowers/subtrack/pkg/logctx"
)

const redisKeyPrefix = "subtrack:"

// RedisRateCache shares resolved rates between instances. Redis failures are
// logged and reported as misses.
type RedisRateCache struct {
	client redis.Cmdable
	log    *zap.SugaredLogger
}

func NewRedisRateCache(client redis.Cmdable, log *zap.SugaredLogger) *RedisRateCache {
	return &RedisRateCache{client: client, log: log}
}

func (c *RedisRateCache) Get(ctx context.Context, key string) (float64, bool) {
	rate, err := c.client.Get(ctx, redisKeyPrefix+key).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		logctx.FromCtx(ctx, c.log).Warnw("redis rate cache get failed", "key", key, "err", err)
		return 0, false
	}
	return rate, true
}

func (c *RedisRateCache) Set(ctx context.Context, key string, rate float64, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	val := strconv.FormatFloat(rate, 'g', -1, 64)
	if err := c.client.Set(ctx, redisKeyPrefix+key, val, ttl).Err(); err != nil {
		logctx.FromCtx(ctx, c.log).Warnw("redis rate cache set failed", "key", key, "err", err)
	}
}
