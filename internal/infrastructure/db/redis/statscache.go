package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloodlink/donation-system/internal/core/ports"
)

const statsKey = "stats:dashboard"

// StatsCache keeps a short-lived copy of the dashboard aggregates in Redis
// so repeated dashboard loads do not fan out into count queries.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a StatsCache with the given entry lifetime.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached stats, or (nil, nil) on a cache miss.
func (c *StatsCache) Get(ctx context.Context) (*ports.DashboardStats, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the stats under the cache TTL.
func (c *StatsCache) Set(ctx context.Context, stats *ports.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, statsKey, raw, c.ttl).Err()
}
