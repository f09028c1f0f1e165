package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/logctx"
	"github.com/fatflowers/subtrack/pkg/metrics"
)

// ErrRateNotFound is returned by lookups that found no usable rate. It never
// leaves the package: GetRate reports it as ok=false.
var ErrRateNotFound = errors.New("exchange rate not found")

// Resolution outcomes, used as the metrics label.
const (
	outcomeIdentity = "identity"
	outcomeCache    = "cache"
	outcomeFresh    = "fresh"
	outcomeInverse  = "inverse"
	outcomeStale    = "stale"
	outcomeMiss     = "miss"
	outcomeError    = "error"
)

// RateResolver resolves the rate converting one unit of from into to.
type RateResolver interface {
	GetRate(ctx context.Context, from, to string) (float64, bool)
}

// Resolver looks up same-day rates with an inverse-pair and a stale-rate
// fallback. It never returns an error; ok=false means no conversion is
// possible.
type Resolver struct {
	store   RateStore
	cache   RateCache
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
	now     func() time.Time
	log     *zap.SugaredLogger
}

type ResolverOption func(*Resolver)

// WithCache caches fresh resolutions for ttl.
func WithCache(cache RateCache, ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.cache = cache
		r.ttl = ttl
	}
}

func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// WithBreaker trips after maxFailures consecutive store errors and stays open
// for timeout.
func WithBreaker(maxFailures uint32, timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.breaker = newStoreBreaker(r.log, maxFailures, timeout)
	}
}

func NewResolver(store RateStore, log *zap.SugaredLogger, opts ...ResolverOption) *Resolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Resolver{store: store, now: time.Now, log: log}
	for _, opt := range opts {
		opt(r)
	}
	if r.breaker == nil {
		r.breaker = newStoreBreaker(log, 5, 30*time.Second)
	}
	return r
}

func newStoreBreaker(log *zap.SugaredLogger, maxFailures uint32, timeout time.Duration) *gobreaker.CircuitBreaker {
	if maxFailures == 0 {
		maxFailures = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "exchange-rate-store",
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// NormalizeCode upper-cases and trims an ISO currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func cacheKey(from, to string, day time.Time) string {
	return fmt.Sprintf("rate:%s:%s:%s", from, to, day.Format(time.DateOnly))
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetRate resolves from→to in this order: a rate dated today or later, the
// reciprocal of such a to→from rate, the most recent from→to rate of any date.
// Store failures are logged and reported as ok=false.
func (r *Resolver) GetRate(ctx context.Context, from, to string) (float64, bool) {
	from, to = NormalizeCode(from), NormalizeCode(to)
	if from == to {
		metrics.IncCounterVec(metrics.RateResolutions, outcomeIdentity)
		return 1, true
	}

	log := logctx.FromCtx(ctx, r.log).With("from", from, "to", to)
	today := startOfDay(r.now())
	key := cacheKey(from, to, today)

	if r.cache != nil {
		if rate, ok := r.cache.Get(ctx, key); ok {
			metrics.IncCounterVec(metrics.RateResolutions, outcomeCache)
			return rate, true
		}
	}

	rate, outcome, err := r.resolve(ctx, from, to, today)
	metrics.IncCounterVec(metrics.RateResolutions, outcome)
	switch {
	case err != nil && !errors.Is(err, ErrRateNotFound):
		log.Warnw("exchange rate lookup failed", "err", err)
		return 0, false
	case err != nil:
		log.Warnw("no exchange rate available")
		return 0, false
	case outcome == outcomeStale:
		log.Warnw("exchange rate stale fallback", "rate", rate)
		return rate, true
	}

	if r.cache != nil {
		r.cache.Set(ctx, key, rate, r.ttl)
	}
	log.Debugw("exchange rate resolved", "rate", rate, "outcome", outcome)
	return rate, true
}

func (r *Resolver) resolve(ctx context.Context, from, to string, today time.Time) (float64, string, error) {
	direct, err := r.lookup(ctx, from, to, &today)
	if err != nil {
		return 0, outcomeError, err
	}
	if usable(direct) {
		return direct.Rate, outcomeFresh, nil
	}

	inverse, err := r.lookup(ctx, to, from, &today)
	if err != nil {
		return 0, outcomeError, err
	}
	if usable(inverse) {
		return 1 / inverse.Rate, outcomeInverse, nil
	}

	stale, err := r.lookup(ctx, from, to, nil)
	if err != nil {
		return 0, outcomeError, err
	}
	if usable(stale) {
		return stale.Rate, outcomeStale, nil
	}
	return 0, outcomeMiss, ErrRateNotFound
}

func (r *Resolver) lookup(ctx context.Context, base, target string, since *time.Time) (*models.ExchangeRate, error) {
	res, err := r.breaker.Execute(func() (interface{}, error) {
		return r.store.LatestRate(ctx, base, target, since)
	})
	if err != nil {
		return nil, err
	}
	rate, _ := res.(*models.ExchangeRate)
	return rate, nil
}

func usable(rate *models.ExchangeRate) bool {
	return rate != nil && rate.Rate > 0
}
