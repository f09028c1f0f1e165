package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/subtrack/internal/app/api/server"
	"github.com/fatflowers/subtrack/internal/app/jobs"
	"github.com/fatflowers/subtrack/internal/app/service/analytics"
	"github.com/fatflowers/subtrack/internal/app/service/currency"
	"github.com/fatflowers/subtrack/internal/app/service/maintenance"
	"github.com/fatflowers/subtrack/internal/app/service/spending"
	"github.com/fatflowers/subtrack/internal/app/service/subscription"
	"github.com/fatflowers/subtrack/internal/platform/cache"
	"github.com/fatflowers/subtrack/internal/platform/db"
	"github.com/fatflowers/subtrack/pkg/config"
	"github.com/fatflowers/subtrack/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	cache.Module,
	server.Module,
	subscription.Module,
	currency.Module,
	spending.Module,
	analytics.Module,
	maintenance.Module,
	jobs.Module,
)
