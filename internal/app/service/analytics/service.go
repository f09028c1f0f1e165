package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/subtrack/internal/app/service/currency"
	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/logctx"
	"github.com/fatflowers/subtrack/pkg/metrics"
	"github.com/fatflowers/subtrack/pkg/money"
	"github.com/fatflowers/subtrack/pkg/tool"
	"github.com/fatflowers/subtrack/pkg/types"
)

var ErrInvalidDataItem = errors.New("invalid data item id")

type StatisticType string

const (
	StatisticTypeMRR                StatisticType = "mrr"
	StatisticTypeARR                StatisticType = "arr"
	StatisticTypeRevenueSeries      StatisticType = "revenue_series"
	StatisticTypeUserGrowth         StatisticType = "user_growth"
	StatisticTypeChurnRate          StatisticType = "churn_rate"
	StatisticTypeRetentionRate      StatisticType = "retention_rate"
	StatisticTypeStatusDistribution StatisticType = "status_distribution"
	StatisticTypePlanDistribution   StatisticType = "plan_distribution"
	StatisticTypeARPU               StatisticType = "arpu"
	StatisticTypeCLV                StatisticType = "clv"
	StatisticTypeForecast           StatisticType = "forecast"
	StatisticTypeMRRComparison      StatisticType = "mrr_comparison"
)

type RevenueStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type RevenueStatisticRequest struct {
	Period      types.AnalyticsPeriod `json:"period"`
	Granularity types.Granularity     `json:"granularity"`
	// Start and End are required for the custom period.
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
	// ForecastPeriods is the number of buckets to forecast; 0 uses the configured default.
	ForecastPeriods int                         `json:"forecast_periods"`
	DataItems       []*RevenueStatisticDataItem `json:"data_items"`
}

type RevenueStatisticResponse struct {
	Currency    string                `json:"currency"`
	Start       time.Time             `json:"start"`
	End         time.Time             `json:"end"`
	Granularity types.Granularity     `json:"granularity"`
	DataItems   map[StatisticType]any `json:"data_items"`
}

// Source loads the platform records analytics run over.
type Source interface {
	ListPlanSubscriptions(ctx context.Context) ([]*models.PlanSubscription, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type Options struct {
	LifespanMonths  float64
	ForecastPeriods int
	PlanNames       map[string]string
}

// Service evaluates revenue statistics over all tenants.
type Service struct {
	db     *gorm.DB
	source Source
	conv   *currency.Converter
	opts   Options
	now    func() time.Time
	log    *zap.SugaredLogger
}

func NewService(db *gorm.DB, source Source, conv *currency.Converter, opts Options, log *zap.SugaredLogger) *Service {
	if opts.LifespanMonths <= 0 {
		opts.LifespanMonths = DefaultLifespanMonths
	}
	if opts.ForecastPeriods <= 0 {
		opts.ForecastPeriods = 3
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{db: db, source: source, conv: conv, opts: opts, now: time.Now, log: log}
}

// dataset is the loaded input with every amount in the base currency.
type dataset struct {
	subs  []Subscription
	users []User
}

type window struct {
	start, end time.Time
	gran       types.Granularity
	horizon    int
}

func (s *Service) load(ctx context.Context) (*dataset, error) {
	var subs []*models.PlanSubscription
	var users []*models.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = s.source.ListPlanSubscriptions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.source.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load analytics data: %w", err)
	}

	base := s.conv.BaseCurrency()
	table := s.conv.Prepare(ctx, lo.Map(subs, func(m *models.PlanSubscription, _ int) currency.Pair {
		return currency.Pair{From: m.Currency, To: base}
	}))
	return &dataset{
		subs: lo.Map(subs, func(m *models.PlanSubscription, _ int) Subscription {
			return subscriptionFromModel(m, table.Convert(m.Amount, m.Currency, base).Value)
		}),
		users: lo.Map(users, func(m *models.User, _ int) User { return User{ID: m.ID, CreatedAt: m.CreatedAt} }),
	}, nil
}

func subscriptionFromModel(m *models.PlanSubscription, amount float64) Subscription {
	sub := Subscription{
		ID:           m.ID,
		UserID:       m.UserID,
		PlanID:       m.PlanID,
		Amount:       amount,
		BillingCycle: string(m.BillingCycle),
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		CanceledAt:   m.CanceledAt,
	}
	// older rows predate canceled_at; the last update is the best guess
	if sub.CanceledAt == nil && sub.canceled() && !m.UpdatedAt.IsZero() {
		updated := m.UpdatedAt
		sub.CanceledAt = &updated
	}
	return sub
}

// mrrAt is MRR restricted to subscriptions created by t, judged by current status.
func mrrAt(subs []Subscription, t time.Time) float64 {
	return mrr(lo.Filter(subs, func(s Subscription, _ int) bool { return !s.CreatedAt.After(t) }))
}

func (s *Service) evaluate(ds *dataset, w window, item StatisticType) (any, error) {
	switch item {
	case StatisticTypeMRR:
		return MRR(ds.subs), nil
	case StatisticTypeARR:
		return ARR(ds.subs), nil
	case StatisticTypeRevenueSeries:
		return RevenueSeries(ds.subs, w.start, w.end, w.gran), nil
	case StatisticTypeUserGrowth:
		return UserGrowthSeries(ds.users, w.start, w.end, w.gran), nil
	case StatisticTypeChurnRate:
		return ChurnRate(ds.subs, w.start, w.end), nil
	case StatisticTypeRetentionRate:
		return RetentionRate(ds.subs, w.start, w.end), nil
	case StatisticTypeStatusDistribution:
		return StatusDistribution(ds.subs), nil
	case StatisticTypePlanDistribution:
		return PlanDistribution(ds.subs, s.opts.PlanNames), nil
	case StatisticTypeARPU:
		return ARPU(mrr(ds.subs), len(ds.users)), nil
	case StatisticTypeCLV:
		return CLV(ARPU(mrr(ds.subs), len(ds.users)), s.opts.LifespanMonths), nil
	case StatisticTypeForecast:
		return Forecast(RevenueSeries(ds.subs, w.start, w.end, w.gran), w.horizon, w.gran), nil
	case StatisticTypeMRRComparison:
		return ComparePeriods(mrrAt(ds.subs, w.end), mrrAt(ds.subs, w.start)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidDataItem, item)
	}
}

// GetRevenueStatistic loads the data once and evaluates every requested item
// concurrently.
func (s *Service) GetRevenueStatistic(ctx context.Context, request *RevenueStatisticRequest) (*RevenueStatisticResponse, error) {
	start, end, err := ResolvePeriod(request.Period, s.now(), request.Start, request.End)
	if err != nil {
		return nil, err
	}
	w := window{start: start, end: end, gran: request.Granularity, horizon: request.ForecastPeriods}
	if w.gran == "" {
		w.gran = DefaultGranularity(request.Period)
	}
	if w.horizon <= 0 {
		w.horizon = s.opts.ForecastPeriods
	}

	for _, di := range request.DataItems {
		if di == nil {
			return nil, fmt.Errorf("%w: null entry", ErrInvalidDataItem)
		}
	}

	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	results := make(map[StatisticType]any, len(request.DataItems))
	g := new(errgroup.Group)
	for _, item := range request.DataItems {
		g.Go(func() error {
			begin := time.Now()
			res, err := s.evaluate(ds, w, item.ID)
			metrics.ObserveHistogramVec(metrics.StatisticDuration, metrics.MillisecondsSince(begin), string(item.ID))
			if err != nil {
				return err
			}
			mu.Lock()
			results[item.ID] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("revenue statistic computed",
		"items", len(results), "subscriptions", len(ds.subs), "users", len(ds.users))
	return &RevenueStatisticResponse{
		Currency:    s.conv.BaseCurrency(),
		Start:       start,
		End:         end,
		Granularity: w.gran,
		DataItems:   results,
	}, nil
}

// buildSnapshot summarizes the current revenue state for snapshotDate.
func (s *Service) buildSnapshot(ds *dataset, snapshotDate time.Time) (*models.RevenueDailySnapshot, error) {
	breakdown, err := json.Marshal(PlanDistribution(ds.subs, s.opts.PlanNames))
	if err != nil {
		return nil, fmt.Errorf("marshal plan distribution: %w", err)
	}
	m := mrr(ds.subs)
	return &models.RevenueDailySnapshot{
		ID:                tool.GenerateUUIDV7(),
		MRR:               money.Round2(m),
		ARR:               money.Round2(m * 12),
		ActiveCount:       countStatus(ds.subs, types.SubscriptionStatusActive),
		TrialCount:        countStatus(ds.subs, types.SubscriptionStatusTrial),
		Currency:          s.conv.BaseCurrency(),
		Breakdown:         datatypes.JSON(breakdown),
		SnapshotDate:      snapshotDate.Format(time.DateOnly),
		SnapshotCreatedAt: s.now(),
	}, nil
}

func countStatus(subs []Subscription, status types.SubscriptionStatus) int64 {
	return int64(lo.CountBy(subs, func(sub Subscription) bool {
		return types.ParseSubscriptionStatus(string(sub.Status)) == status
	}))
}

// SaveDailySnapshot persists the revenue state for snapshotDate, replacing an
// earlier snapshot of the same day.
func (s *Service) SaveDailySnapshot(ctx context.Context, snapshotDate time.Time) error {
	ds, err := s.load(ctx)
	if err != nil {
		return err
	}
	snap, err := s.buildSnapshot(ds, snapshotDate)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"mrr", "arr", "active_count", "trial_count", "currency", "breakdown", "snapshot_created_at"}),
	}).Create(snap).Error
}
