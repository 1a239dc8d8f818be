package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GenerationCache keeps the latest plan text per project in Redis so detail
// reads do not hit the generation history table every time. A nil cache is
// valid and behaves as a permanent miss.
type GenerationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewGenerationCache(rdb *redis.Client, ttl time.Duration) *GenerationCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &GenerationCache{rdb: rdb, ttl: ttl}
}

func key(projectID int64) string {
	return fmt.Sprintf("project:%d:latest_generation", projectID)
}

func (c *GenerationCache) Get(ctx context.Context, projectID int64) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key(projectID)).Result()
	if errors.Is(err, redis.Nil) || err != nil {
		return "", false
	}
	return val, true
}

// Set stores the latest response. Failures are swallowed: the cache is an
// optimization, never a source of truth.
func (c *GenerationCache) Set(ctx context.Context, projectID int64, response string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, key(projectID), response, c.ttl).Err()
}

func (c *GenerationCache) Invalidate(ctx context.Context, projectID int64) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(projectID)).Err()
}
