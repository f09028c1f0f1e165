package currency

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/subtrack/pkg/config"
	"github.com/fatflowers/subtrack/pkg/metrics"
)

func newRateCache(cfg *cfgpkg.Config, l *zap.SugaredLogger, rc *redis.Client) RateCache {
	mem := NewMemoryRateCache(nil)
	if rc == nil {
		return mem
	}
	return NewTieredRateCache(cfg.Currency.CacheTTL, mem, NewRedisRateCache(rc, l))
}

func newResolver(cfg *cfgpkg.Config, l *zap.SugaredLogger, store *GormRateStore, cache RateCache) *Resolver {
	metrics.RegisterBusinessMetrics(l)
	return NewResolver(store, l,
		WithCache(cache, cfg.Currency.CacheTTL),
		WithBreaker(cfg.Currency.Breaker.MaxFailures, cfg.Currency.Breaker.Timeout),
	)
}

func newConverter(cfg *cfgpkg.Config, l *zap.SugaredLogger, r *Resolver) *Converter {
	return NewConverter(r, cfg.Currency.BaseCurrency, cfg.Currency.LookupConcurrency, l)
}

// Module exposes the exchange rate store, resolver and converter via Fx.
var Module = fx.Options(
	fx.Provide(NewGormRateStore),
	fx.Provide(newRateCache),
	fx.Provide(newResolver),
	fx.Provide(newConverter),
)
