package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func clock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestResolver_SameCurrencyNeedsNoLookup(t *testing.T) {
	store := &fakeRateStore{}
	r := NewResolver(store, zap.NewNop().Sugar(), WithClock(clock(testNow)))

	rate, ok := r.GetRate(context.Background(), "USD", "usd ")
	require.True(t, ok)
	require.Equal(t, 1.0, rate)
	require.Equal(t, 0, store.callCount())
}

func TestResolver_ResolutionOrder(t *testing.T) {
	tests := []struct {
		name   string
		store  *fakeRateStore
		want   float64
		wantOK bool
	}{
		{
			name:   "fresh direct rate",
			store:  (&fakeRateStore{}).add("USD", "IDR", day(2026, 10, 15), 16000).add("USD", "IDR", day(2026, 10, 1), 15000),
			want:   16000,
			wantOK: true,
		},
		{
			name:   "future dated rate counts as fresh",
			store:  (&fakeRateStore{}).add("USD", "IDR", day(2026, 10, 16), 16100),
			want:   16100,
			wantOK: true,
		},
		{
			name:   "inverse of fresh reverse rate",
			store:  (&fakeRateStore{}).add("IDR", "USD", day(2026, 10, 15), 0.0000625).add("USD", "IDR", day(2026, 9, 1), 14000),
			want:   16000,
			wantOK: true,
		},
		{
			name:   "stale direct rate when nothing fresh",
			store:  (&fakeRateStore{}).add("USD", "IDR", day(2026, 9, 1), 14000).add("USD", "IDR", day(2026, 8, 1), 13000),
			want:   14000,
			wantOK: true,
		},
		{
			name:   "stale reverse rate is not used",
			store:  (&fakeRateStore{}).add("IDR", "USD", day(2026, 9, 1), 0.0000625),
			wantOK: false,
		},
		{
			name:   "non-positive rate ignored",
			store:  (&fakeRateStore{}).add("USD", "IDR", day(2026, 10, 15), 0),
			wantOK: false,
		},
		{
			name:   "nothing stored",
			store:  &fakeRateStore{},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.store, zap.NewNop().Sugar(), WithClock(clock(testNow)))
			rate, ok := r.GetRate(context.Background(), "usd", "IDR")
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, rate, 1e-6)
			} else {
				assert.Equal(t, 0.0, rate)
			}
		})
	}
}

func TestResolver_StoreErrorIsMiss(t *testing.T) {
	store := (&fakeRateStore{err: errors.New("connection refused")}).add("USD", "IDR", day(2026, 10, 15), 16000)
	r := NewResolver(store, zap.NewNop().Sugar(), WithClock(clock(testNow)))

	rate, ok := r.GetRate(context.Background(), "USD", "IDR")
	require.False(t, ok)
	require.Equal(t, 0.0, rate)
}

func TestResolver_BreakerOpensAfterFailures(t *testing.T) {
	store := &fakeRateStore{err: errors.New("timeout")}
	r := NewResolver(store, zap.NewNop().Sugar(), WithClock(clock(testNow)), WithBreaker(2, time.Minute))

	for i := 0; i < 2; i++ {
		_, ok := r.GetRate(context.Background(), "USD", "IDR")
		require.False(t, ok)
	}
	calls := store.callCount()
	require.Equal(t, 2, calls)

	// open breaker short-circuits the store
	_, ok := r.GetRate(context.Background(), "USD", "IDR")
	require.False(t, ok)
	require.Equal(t, calls, store.callCount())
}

func TestResolver_CachesFreshButNotStale(t *testing.T) {
	store := (&fakeRateStore{}).add("USD", "IDR", day(2026, 10, 15), 16000).add("EUR", "IDR", day(2026, 1, 1), 17000)
	cache := NewMemoryRateCache(clock(testNow))
	r := NewResolver(store, zap.NewNop().Sugar(), WithClock(clock(testNow)), WithCache(cache, time.Hour))
	ctx := context.Background()

	rate, ok := r.GetRate(ctx, "USD", "IDR")
	require.True(t, ok)
	require.Equal(t, 16000.0, rate)
	calls := store.callCount()

	rate, ok = r.GetRate(ctx, "USD", "IDR")
	require.True(t, ok)
	require.Equal(t, 16000.0, rate)
	require.Equal(t, calls, store.callCount(), "second lookup must be served from cache")

	_, ok = r.GetRate(ctx, "EUR", "IDR")
	require.True(t, ok)
	require.Equal(t, 1, cache.Size(), "stale fallback must not be cached")
}

func TestResolver_CacheKeyRollsOverAtMidnight(t *testing.T) {
	store := (&fakeRateStore{}).add("USD", "IDR", day(2026, 10, 15), 16000)
	now := testNow
	cache := NewMemoryRateCache(func() time.Time { return now })
	r := NewResolver(store, zap.NewNop().Sugar(), WithClock(func() time.Time { return now }), WithCache(cache, 48*time.Hour))
	ctx := context.Background()

	_, ok := r.GetRate(ctx, "USD", "IDR")
	require.True(t, ok)

	// next day the same-day rate is stale; a new key forces a new lookup
	now = now.Add(24 * time.Hour)
	store.add("USD", "IDR", day(2026, 10, 16), 16200)
	rate, ok := r.GetRate(ctx, "USD", "IDR")
	require.True(t, ok)
	require.Equal(t, 16200.0, rate)
}
