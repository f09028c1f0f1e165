// Package maintenance caches the process-wide maintenance flag.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/logctx"
)

const DefaultCacheTTL = 10 * time.Second

// FlagSource is the source of truth for the maintenance flag.
type FlagSource interface {
	MaintenanceMode(ctx context.Context) (bool, error)
	SetMaintenanceMode(ctx context.Context, active bool) error
}

// GormFlagSource stores the flag as an app_setting row. A missing row means off.
type GormFlagSource struct {
	db *gorm.DB
}

func NewGormFlagSource(db *gorm.DB) *GormFlagSource {
	return &GormFlagSource{db: db}
}

func (s *GormFlagSource) MaintenanceMode(ctx context.Context) (bool, error) {
	var setting models.AppSetting
	err := s.db.WithContext(ctx).Where("key = ?", models.AppSettingMaintenanceMode).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	active, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", models.AppSettingMaintenanceMode, setting.Value, err)
	}
	return active, nil
}

func (s *GormFlagSource) SetMaintenanceMode(ctx context.Context, active bool) error {
	setting := &models.AppSetting{Key: models.AppSettingMaintenanceMode, Value: strconv.FormatBool(active), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

// Service answers IsActive from a cached value that is re-read once it
// expires. Concurrent refreshes share one source read. Lookup failures read
// as inactive.
type Service struct {
	source FlagSource
	ttl    time.Duration
	now    func() time.Time
	log    *zap.SugaredLogger
	group  singleflight.Group

	mu         sync.RWMutex
	value      bool
	expiresAt  time.Time
	generation uint64
}

func NewService(source FlagSource, ttl time.Duration, log *zap.SugaredLogger) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{source: source, ttl: ttl, now: time.Now, log: log}
}

func (s *Service) IsActive(ctx context.Context) bool {
	s.mu.RLock()
	value, fresh := s.value, s.now().Before(s.expiresAt)
	s.mu.RUnlock()
	if fresh {
		return value
	}
	v, _, _ := s.group.Do(models.AppSettingMaintenanceMode, func() (any, error) {
		return s.refresh(ctx), nil
	})
	return v.(bool)
}

func (s *Service) refresh(ctx context.Context) bool {
	s.mu.RLock()
	if s.now().Before(s.expiresAt) {
		defer s.mu.RUnlock()
		return s.value
	}
	gen := s.generation
	s.mu.RUnlock()

	active, err := s.source.MaintenanceMode(ctx)
	if err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("maintenance flag lookup failed, assuming inactive", "err", err)
		active = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// a SetActive during the read wins
	if gen == s.generation {
		s.value = active
		s.expiresAt = s.now().Add(s.ttl)
	}
	return active
}

// SetActive writes the flag through to the source and drops the cached value.
func (s *Service) SetActive(ctx context.Context, active bool) error {
	if err := s.source.SetMaintenanceMode(ctx, active); err != nil {
		return fmt.Errorf("failed to set maintenance mode: %w", err)
	}
	s.mu.Lock()
	s.expiresAt = time.Time{}
	s.generation++
	s.mu.Unlock()
	logctx.FromCtx(ctx, s.log).Infow("maintenance mode changed", "active", active)
	return nil
}
