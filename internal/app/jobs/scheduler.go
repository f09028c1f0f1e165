// Package jobs runs the periodic revenue snapshot and exchange rate warmup.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fatflowers/subtrack/internal/app/service/currency"
	cfgpkg "github.com/fatflowers/subtrack/pkg/config"
)

const jobTimeout = 5 * time.Minute

type SnapshotSaver interface {
	SaveDailySnapshot(ctx context.Context, snapshotDate time.Time) error
}

type Scheduler struct {
	cron      *cron.Cron
	snapshots SnapshotSaver
	rates     currency.RateResolver
	pairs     []cfgpkg.CurrencyPair
	now       func() time.Time
	log       *zap.SugaredLogger
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ log *zap.SugaredLogger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "err", err)...)
}

// NewScheduler registers the snapshot and warmup jobs. Nothing runs until Start.
func NewScheduler(cfg *cfgpkg.Config, snapshots SnapshotSaver, rates currency.RateResolver, log *zap.SugaredLogger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	pairs, err := cfg.ParseWarmPairs()
	if err != nil {
		return nil, err
	}
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cronLogger{log: log}))),
		snapshots: snapshots,
		rates:     rates,
		pairs:     pairs,
		now:       time.Now,
		log:       log,
	}
	if _, err := s.cron.AddFunc(cfg.Jobs.SnapshotCron, s.snapshotJob); err != nil {
		return nil, fmt.Errorf("invalid snapshot cron %q: %w", cfg.Jobs.SnapshotCron, err)
	}
	if _, err := s.cron.AddFunc(cfg.Jobs.RateWarmCron, s.warmJob); err != nil {
		return nil, fmt.Errorf("invalid rate warm cron %q: %w", cfg.Jobs.RateWarmCron, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infow("job scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) snapshotJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := s.RunSnapshot(ctx); err != nil {
		s.log.Errorw("daily revenue snapshot failed", "err", err)
	}
}

func (s *Scheduler) warmJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.WarmRates(ctx)
}

// RunSnapshot stores the revenue snapshot for the UTC day that just ended.
func (s *Scheduler) RunSnapshot(ctx context.Context) error {
	now := s.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	if err := s.snapshots.SaveDailySnapshot(ctx, day); err != nil {
		return err
	}
	s.log.Infow("daily revenue snapshot saved", "date", day.Format(time.DateOnly))
	return nil
}

// WarmRates resolves every configured pair so the rate caches are populated,
// returning how many resolved.
func (s *Scheduler) WarmRates(ctx context.Context) int {
	resolved := 0
	for _, p := range s.pairs {
		if ctx.Err() != nil {
			break
		}
		if _, ok := s.rates.GetRate(ctx, p.From, p.To); ok {
			resolved++
		}
	}
	s.log.Infow("exchange rates warmed", "pairs", len(s.pairs), "resolved", resolved)
	return resolved
}
