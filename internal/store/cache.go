package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sim-feed/user-service/internal/metrics"
	"go.uber.org/zap"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache is a small JSON read-through cache over redis, used for hot profile
// reads. Cache errors other than misses are logged and surfaced; callers
// fall back to the database.
type Cache struct {
	client  *redis.Client
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewCache(addr string, logger *zap.SugaredLogger, metrics *metrics.Metrics) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	return &Cache{
		client:  client,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Cache key prefixes
const (
	keyUserProfile = "simfeed:user:profile"
)

func UserProfileKey(id string) string {
	return fmt.Sprintf("%s:%s", keyUserProfile, id)
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			if c.metrics != nil {
				c.metrics.RecordCacheMiss(ctx, keyUserProfile)
			}
			return ErrCacheMiss
		}
		if c.logger != nil {
			c.logger.Errorw("Cache get error", "key", key, "error", err)
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if c.metrics != nil {
		c.metrics.RecordCacheHit(ctx, keyUserProfile)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		if c.logger != nil {
			c.logger.Errorw("Cache set error", "key", key, "error", err)
		}
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
