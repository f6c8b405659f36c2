package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farmhaul/dispatch/internal/domain"
)

// RedisCache persists oracle lookups across process restarts. It is
// optional: an Oracle works fine with only its in-memory map, but
// wiring this in lets a fleet tournament warm-start from a prior run's
// distances instead of re-deriving every fallback value.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps client with the distance cache's key scheme.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ttl: 24 * time.Hour}
}

func redisKey(k cacheKey) string {
	return fmt.Sprintf("dist:%.4f,%.4f:%.4f,%.4f", k.lat1, k.lon1, k.lat2, k.lon2)
}

func (c *RedisCache) get(ctx context.Context, k cacheKey) (float64, bool) {
	data, err := c.client.Get(ctx, redisKey(k)).Bytes()
	if err != nil {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, false
	}
	return v, true
}

func (c *RedisCache) set(ctx context.Context, k cacheKey, v float64) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKey(k), data, c.ttl).Err()
}

// Persisted wraps an Oracle so every cache store also lands in Redis,
// and every lookup checks Redis before falling through to a fresh
// computation. Construct it once at startup and use it in place of a
// bare Oracle when a Redis client is available.
type Persisted struct {
	*Oracle
	rc *RedisCache
}

// NewPersisted attaches a RedisCache to an existing Oracle.
func NewPersisted(o *Oracle, rc *RedisCache) *Persisted {
	return &Persisted{Oracle: o, rc: rc}
}

// Distance checks the in-memory cache, then Redis, then the Oracle's
// normal API-or-fallback path, writing through to both caches.
func (p *Persisted) Distance(ctx context.Context, p1, p2 domain.Point, useAPI bool) float64 {
	key := newKey(p1, p2)

	p.Oracle.mu.RLock()
	v, ok := p.Oracle.cache[key]
	p.Oracle.mu.RUnlock()
	if ok {
		return v
	}

	if v, ok := p.rc.get(ctx, key); ok {
		p.Oracle.store(key, v)
		return v
	}

	v = p.Oracle.Distance(ctx, p1, p2, useAPI)
	if err := p.rc.set(ctx, key, v); err != nil {
		p.Oracle.log.Warn("distance: redis write-through failed", "error", err)
	}
	return v
}
