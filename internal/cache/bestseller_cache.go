package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

// bestSellerEnvelope wraps the cached result so an explicit "no best seller
// this period" outcome is cacheable too and never read as a miss.
type bestSellerEnvelope struct {
	Result   *models.BestSeller `json:"result"`
	CachedAt time.Time          `json:"cachedAt"`
}

// BestSellerCache caches aggregator output per window key for a bounded
// staleness interval. The aggregator itself stays stateless.
type BestSellerCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewBestSellerCache creates a BestSellerCache with the given TTL.
func NewBestSellerCache(redis *RedisClient, ttl time.Duration) *BestSellerCache {
	return &BestSellerCache{redis: redis, ttl: ttl}
}

func (c *BestSellerCache) key(windowKey string) string {
	return fmt.Sprintf("bestseller:%s", windowKey)
}

// Set stores the aggregator result for a window key. A nil result is valid
// and means the window produced no qualifying best seller.
func (c *BestSellerCache) Set(ctx context.Context, windowKey string, result *models.BestSeller) error {
	env := bestSellerEnvelope{Result: result, CachedAt: time.Now()}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal best seller: %w", err)
	}
	return c.redis.Set(ctx, c.key(windowKey), string(data), c.ttl)
}

// Get returns the cached result for a window key. found=false signals a
// cache miss; found=true with a nil result is a cached "none".
func (c *BestSellerCache) Get(ctx context.Context, windowKey string) (*models.BestSeller, bool, error) {
	data, err := c.redis.Get(ctx, c.key(windowKey))
	if err != nil {
		if IsMiss(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var env bestSellerEnvelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal best seller: %w", err)
	}
	return env.Result, true, nil
}

// Invalidate drops cached results for the given window keys.
func (c *BestSellerCache) Invalidate(ctx context.Context, windowKeys ...string) error {
	keys := make([]string, len(windowKeys))
	for i, wk := range windowKeys {
		keys[i] = c.key(wk)
	}
	return c.redis.Delete(ctx, keys...)
}
