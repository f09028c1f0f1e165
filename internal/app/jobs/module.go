package jobs

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/subtrack/internal/app/service/analytics"
	"github.com/fatflowers/subtrack/internal/app/service/currency"
	cfgpkg "github.com/fatflowers/subtrack/pkg/config"
)

func newScheduler(cfg *cfgpkg.Config, stats *analytics.Service, resolver *currency.Resolver, l *zap.SugaredLogger) (*Scheduler, error) {
	return NewScheduler(cfg, stats, resolver, l)
}

// runScheduler starts the cron scheduler with the app when jobs are enabled.
func runScheduler(lc fx.Lifecycle, cfg *cfgpkg.Config, l *zap.SugaredLogger, s *Scheduler) {
	if !cfg.Jobs.Enabled {
		l.Infow("job scheduler disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Infow("stopping job scheduler")
			return s.Stop(ctx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newScheduler),
	fx.Invoke(runScheduler),
)
