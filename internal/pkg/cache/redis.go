package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"revcast/internal/config"
)

// RedisCache wraps a Redis client with JSON serialization.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Set stores a JSON-marshaled value.
func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

// Get loads a JSON value into dest.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete removes keys.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// Exists reports whether key exists.
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// Close closes the connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Client returns the underlying redis client.
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Key patterns.
const (
	ConceptCacheKeyPrefix = "concepts:"
	ConceptCacheTTL       = 24 * time.Hour
)

// ConceptCacheKey builds the concept-extraction cache key.
// The key includes the prompt version so a prompt change invalidates
// previously cached extractions.
func ConceptCacheKey(chapterText, promptVersion string) string {
	sum := sha256.Sum256([]byte(chapterText))
	return ConceptCacheKeyPrefix + promptVersion + ":" + hex.EncodeToString(sum[:])
}
