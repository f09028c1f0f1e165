package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/subtrack/docs"
	"github.com/fatflowers/subtrack/internal/app/api/handlers"
	mw "github.com/fatflowers/subtrack/internal/app/api/middleware"
	"github.com/fatflowers/subtrack/internal/app/service/analytics"
	"github.com/fatflowers/subtrack/internal/app/service/currency"
	"github.com/fatflowers/subtrack/internal/app/service/maintenance"
	"github.com/fatflowers/subtrack/internal/app/service/spending"
	subsvc "github.com/fatflowers/subtrack/internal/app/service/subscription"
	cfgpkg "github.com/fatflowers/subtrack/pkg/config"
	metrics "github.com/fatflowers/subtrack/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Log         *zap.SugaredLogger
	Cfg         *cfgpkg.Config
	Repo        *subsvc.Service
	Spending    *spending.Service
	Converter   *currency.Converter
	RateStore   *currency.GormRateStore
	Analytics   *analytics.Service
	Maintenance *maintenance.Service
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	if d.Cfg != nil && d.Cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: d.Log,
		})
		p.SetListenAddress(d.Cfg.MetricsAddr)
		p.Use(r)

		d.Log.Infow("metrics started", "addr", d.Cfg.MetricsAddr)
	}
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	// admin routes stay reachable so maintenance can be switched off
	apiV1.Use(mw.MaintenanceMiddleware(d.Maintenance, "/api/v1/admin"))

	handlers.RegisterDashboardRoutes(apiV1.Group("/dashboard"), d.Repo, d.Spending)
	handlers.RegisterCurrencyRoutes(apiV1.Group("/currency"), d.Converter)
	handlers.RegisterAdminRoutes(apiV1.Group("/admin"), d.Analytics, d.RateStore, d.Maintenance)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
