package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/tool"
)

// RateStore reads date-stamped exchange rates.
type RateStore interface {
	// LatestRate returns the most recent base→target rate dated on or after
	// since, or regardless of date when since is nil. It returns (nil, nil)
	// when no such rate exists.
	LatestRate(ctx context.Context, base, target string, since *time.Time) (*models.ExchangeRate, error)
}

// GormRateStore is the postgres-backed RateStore.
type GormRateStore struct {
	db *gorm.DB
}

func NewGormRateStore(db *gorm.DB) *GormRateStore { return &GormRateStore{db: db} }

func (s *GormRateStore) LatestRate(ctx context.Context, base, target string, since *time.Time) (*models.ExchangeRate, error) {
	q := s.db.WithContext(ctx).
		Where("base_currency = ? AND target_currency = ?", base, target)
	if since != nil {
		q = q.Where("date >= ?", datatypes.Date(*since))
	}
	var rate models.ExchangeRate
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).Take(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query exchange rate %s->%s: %w", base, target, err)
	}
	return &rate, nil
}

// UpsertRate stores rate, replacing any rate already recorded for the same pair and date.
func (s *GormRateStore) UpsertRate(ctx context.Context, rate *models.ExchangeRate) error {
	if rate == nil {
		return fmt.Errorf("nil exchange rate")
	}
	if rate.Rate <= 0 {
		return fmt.Errorf("exchange rate must be positive, got %v", rate.Rate)
	}
	rate.BaseCurrency = strings.ToUpper(strings.TrimSpace(rate.BaseCurrency))
	rate.TargetCurrency = strings.ToUpper(strings.TrimSpace(rate.TargetCurrency))
	if rate.BaseCurrency == "" || rate.TargetCurrency == "" {
		return fmt.Errorf("missing currency code")
	}
	if rate.ID == "" {
		rate.ID = tool.GenerateUUIDV7()
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base_currency"}, {Name: "target_currency"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(rate).Error
}
