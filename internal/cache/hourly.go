// Package cache memoizes the pipeline output per hour bucket so repeated
// reads within the same hour never touch the network.
package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"
)

// HourBucket floors t to the hour, the cache key granularity.
func HourBucket(t time.Time) int64 {
	return t.UTC().Truncate(time.Hour).Unix()
}

// HourlyCache is a single-slot memo: it holds the result of at most one
// pipeline run, keyed by its hour bucket. A new bucket supersedes the old
// entry on the first access of the new hour; there is no background refresh
// and no eviction beyond superseding.
//
// The mutex is held across the compute call so concurrent misses for the
// same bucket serialize into one computation instead of duplicate fetch
// storms. Compute errors are returned but never cached.
type HourlyCache struct {
	mu    sync.Mutex
	key   int64
	value *domain.MarketData
}

func NewHourlyCache() *HourlyCache {
	return &HourlyCache{key: -1}
}

// GetOrCompute returns the stored value for bucket, running compute exactly
// once per bucket on a miss.
func (c *HourlyCache) GetOrCompute(ctx context.Context, bucket int64, compute func(ctx context.Context) (*domain.MarketData, error)) (*domain.MarketData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.value != nil && c.key == bucket {
		return c.value, nil
	}

	log.Printf("cache miss for hour bucket %d, running pipeline", bucket)
	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	c.key = bucket
	c.value = value
	return value, nil
}
