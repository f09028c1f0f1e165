package currency

import (
	"context"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/fatflowers/subtrack/internal/models"
)

// fakeRateStore is an in-memory RateStore for tests.
type fakeRateStore struct {
	mu    sync.Mutex
	rates []*models.ExchangeRate
	err   error
	calls int
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *fakeRateStore) add(base, target string, date time.Time, rate float64) *fakeRateStore {
	s.rates = append(s.rates, &models.ExchangeRate{BaseCurrency: base, TargetCurrency: target, Date: datatypes.Date(date), Rate: rate})
	return s
}

func (s *fakeRateStore) LatestRate(_ context.Context, base, target string, since *time.Time) (*models.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var best *models.ExchangeRate
	for _, r := range s.rates {
		if r.BaseCurrency != base || r.TargetCurrency != target {
			continue
		}
		if since != nil && r.EffectiveDate().Before(*since) {
			continue
		}
		if best == nil || r.EffectiveDate().After(best.EffectiveDate()) {
			best = r
		}
	}
	return best, nil
}

func (s *fakeRateStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
