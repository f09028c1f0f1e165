package spending

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/subtrack/internal/app/service/currency"
	cfgpkg "github.com/fatflowers/subtrack/pkg/config"
)

func newService(cfg *cfgpkg.Config, conv *currency.Converter, l *zap.SugaredLogger) *Service {
	return NewService(conv, cfg.Analytics.SavingsPercent, l)
}

// Module exposes the spending aggregation service via Fx.
var Module = fx.Options(
	fx.Provide(newService),
)
