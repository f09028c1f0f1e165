package currency

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RateCache holds resolved rates for a bounded time.
type RateCache interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, rate float64, ttl time.Duration)
}

const memoryCleanupInterval = 10 * time.Minute

type memoryEntry struct {
	rate      float64
	expiresAt time.Time
}

// MemoryRateCache is an in-process RateCache backed by go-cache. Expiry is
// checked against the injected clock; go-cache's own TTL only drives the
// background janitor.
type MemoryRateCache struct {
	items *gocache.Cache
	now   func() time.Time
}

func NewMemoryRateCache(now func() time.Time) *MemoryRateCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryRateCache{items: gocache.New(gocache.NoExpiration, memoryCleanupInterval), now: now}
}

func (c *MemoryRateCache) Get(_ context.Context, key string) (float64, bool) {
	v, ok := c.items.Get(key)
	if !ok {
		return 0, false
	}
	e := v.(memoryEntry)
	if !c.now().Before(e.expiresAt) {
		return 0, false
	}
	return e.rate, true
}

func (c *MemoryRateCache) Set(_ context.Context, key string, rate float64, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.items.Set(key, memoryEntry{rate: rate, expiresAt: c.now().Add(ttl)}, ttl)
}

// CleanExpired drops expired entries and returns how many were removed.
func (c *MemoryRateCache) CleanExpired() int {
	now := c.now()
	removed := 0
	for k, item := range c.items.Items() {
		if e, ok := item.Object.(memoryEntry); ok && !now.Before(e.expiresAt) {
			c.items.Delete(k)
			removed++
		}
	}
	return removed
}

func (c *MemoryRateCache) Size() int {
	return c.items.ItemCount()
}

// TieredRateCache reads tiers in order and backfills faster tiers on a hit in
// a slower one. Writes go to every tier.
type TieredRateCache struct {
	tiers       []RateCache
	backfillTTL time.Duration
}

func NewTieredRateCache(backfillTTL time.Duration, tiers ...RateCache) *TieredRateCache {
	return &TieredRateCache{tiers: tiers, backfillTTL: backfillTTL}
}

func (c *TieredRateCache) Get(ctx context.Context, key string) (float64, bool) {
	for i, tier := range c.tiers {
		rate, ok := tier.Get(ctx, key)
		if !ok {
			continue
		}
		for _, upper := range c.tiers[:i] {
			upper.Set(ctx, key, rate, c.backfillTTL)
		}
		return rate, true
	}
	return 0, false
}

func (c *TieredRateCache) Set(ctx context.Context, key string, rate float64, ttl time.Duration) {
	for _, tier := range c.tiers {
		tier.Set(ctx, key, rate, ttl)
	}
}
