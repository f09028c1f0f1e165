package maintenance

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	cfgpkg "github.com/fatflowers/subtrack/pkg/config"
)

func newService(cfg *cfgpkg.Config, db *gorm.DB, l *zap.SugaredLogger) *Service {
	return NewService(NewGormFlagSource(db), cfg.Maintenance.CacheTTL, l)
}

// Module exposes the maintenance flag service via Fx.
var Module = fx.Options(
	fx.Provide(newService),
)
