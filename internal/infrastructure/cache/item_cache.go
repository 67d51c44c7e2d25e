// Package cache provides the Redis-backed item cache and a no-op fallback
// for deployments without Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	appcatalog "github.com/ims/backend/internal/application/catalog"
	"github.com/ims/backend/internal/infrastructure/config"
)

const itemKeyPrefix = "ims:item:"

// RedisItemCache caches item responses in Redis
type RedisItemCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a Redis client from configuration and verifies the
// connection.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisItemCache creates an item cache with the given TTL
func NewRedisItemCache(client *redis.Client, ttl time.Duration) *RedisItemCache {
	return &RedisItemCache{client: client, ttl: ttl}
}

// Get returns the cached item, or nil on a miss
func (c *RedisItemCache) Get(ctx context.Context, id uuid.UUID) (*appcatalog.ItemResponse, error) {
	data, err := c.client.Get(ctx, itemKeyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var item appcatalog.ItemResponse
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to decode cached item: %w", err)
	}
	return &item, nil
}

// Set stores an item response under its id
func (c *RedisItemCache) Set(ctx context.Context, item *appcatalog.ItemResponse) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode item for cache: %w", err)
	}
	return c.client.Set(ctx, itemKeyPrefix+item.ID, data, c.ttl).Err()
}

// Invalidate drops the cached entries for the given ids
func (c *RedisItemCache) Invalidate(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, itemKeyPrefix+id.String())
	}
	return c.client.Del(ctx, keys...).Err()
}

// NoopItemCache satisfies the cache interface without caching anything
type NoopItemCache struct{}

// NewNoopItemCache creates a no-op cache
func NewNoopItemCache() *NoopItemCache { return &NoopItemCache{} }

func (*NoopItemCache) Get(context.Context, uuid.UUID) (*appcatalog.ItemResponse, error) {
	return nil, nil
}

func (*NoopItemCache) Set(context.Context, *appcatalog.ItemResponse) error { return nil }

func (*NoopItemCache) Invalidate(context.Context, ...uuid.UUID) error { return nil }
