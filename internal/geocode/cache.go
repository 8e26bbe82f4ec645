package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/redis/go-redis/v9"

	"tripzy/internal/trip"
)

// Cache stores resolved destinations keyed by normalized query so repeat
// lookups skip the network (and the rate limiter). Misses are cheap; cache
// failures must never fail a resolution.
type Cache interface {
	Get(ctx context.Context, query string) (*trip.Destination, bool)
	Set(ctx context.Context, query string, dest trip.Destination)
}

func cacheKey(query string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(query))
}

// MemoryCache is the in-process TTL cache used when no Redis is configured.
type MemoryCache struct {
	cache *ttlcache.Cache[string, trip.Destination]
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	c := ttlcache.New[string, trip.Destination](
		ttlcache.WithTTL[string, trip.Destination](ttl),
	)
	go c.Start()
	return &MemoryCache{cache: c}
}

func (m *MemoryCache) Get(_ context.Context, query string) (*trip.Destination, bool) {
	item := m.cache.Get(cacheKey(query))
	if item == nil {
		return nil, false
	}
	dest := item.Value()
	return &dest, true
}

func (m *MemoryCache) Set(_ context.Context, query string, dest trip.Destination) {
	m.cache.Set(cacheKey(query), dest, ttlcache.DefaultTTL)
}

// Stop halts the cache's expiration loop.
func (m *MemoryCache) Stop() {
	m.cache.Stop()
}

// RedisCache shares resolved destinations across instances.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, query string) (*trip.Destination, bool) {
	val, err := c.rdb.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("geocode cache: get %q: %v", query, err)
		}
		return nil, false
	}
	var dest trip.Destination
	if err := json.Unmarshal([]byte(val), &dest); err != nil {
		log.Printf("geocode cache: decode %q: %v", query, err)
		return nil, false
	}
	return &dest, true
}

func (c *RedisCache) Set(ctx context.Context, query string, dest trip.Destination) {
	payload, err := json.Marshal(dest)
	if err != nil {
		log.Printf("geocode cache: encode %q: %v", query, err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(query), payload, c.ttl).Err(); err != nil {
		log.Printf("geocode cache: set %q: %v", query, err)
	}
}
