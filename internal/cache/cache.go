// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/technomart/shop-backend/internal/config"
)

const (
	KeyFeaturedProducts     = "featured_products"
	KeyCategoriesWithCounts = "categories_with_counts"
)

// Cache is a thin wrapper over a Redis client. All methods degrade to a
// no-op when Redis is unavailable so the database stays the source of
// truth and reads simply skip the cache.
type Cache struct {
	client *redis.Client
	logger *logrus.Logger
}

func New(cfg *config.Config, logger *logrus.Logger) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("Redis unavailable, caching disabled")
		return &Cache{client: nil, logger: logger}
	}

	logger.WithField("addr", cfg.Redis.Addr).Info("Connected to Redis")
	return &Cache{client: client, logger: logger}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// GetJSON loads the value stored under key into dest. It returns false
// on a miss, a disabled cache, or a decode failure.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache entry corrupt, dropping")
		c.client.Del(ctx, key)
		return false
	}

	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache encode failed")
		return
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WithError(err).Warn("Cache invalidation failed")
	}
}

// InvalidateProductCaches drops the product-derived entries after any
// product write. Entries are rebuilt lazily on the next read.
func (c *Cache) InvalidateProductCaches(ctx context.Context) {
	c.Delete(ctx, KeyFeaturedProducts, KeyCategoriesWithCounts)
}
