package analytics

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/subtrack/internal/app/service/currency"
	"github.com/fatflowers/subtrack/internal/app/service/subscription"
	cfgpkg "github.com/fatflowers/subtrack/pkg/config"
)

func newService(cfg *cfgpkg.Config, db *gorm.DB, repo *subscription.Service, conv *currency.Converter, l *zap.SugaredLogger) *Service {
	return NewService(db, repo, conv, Options{
		LifespanMonths:  cfg.Analytics.LifespanMonths,
		ForecastPeriods: cfg.Analytics.ForecastMonths,
		PlanNames:       cfg.PlanNames(),
	}, l)
}

// Module exposes the revenue analytics service via Fx.
var Module = fx.Options(
	fx.Provide(newService),
)
