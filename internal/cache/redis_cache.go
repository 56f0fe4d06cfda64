package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache stores JSON-encoded values in redis, for multi-node deployments
// where capability lookups must be shared across API instances.
type RedisCache[V any] struct {
	client *redis.Client
}

// NewRedisCache returns a cache backed by the given redis instance.
func NewRedisCache[V any](opts *RedisOptions) *RedisCache[V] {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &RedisCache[V]{client: client}
}

// NewRedisCacheWithClient wraps an existing client, used by tests.
func NewRedisCacheWithClient[V any](client *redis.Client) *RedisCache[V] {
	return &RedisCache[V]{client: client}
}

func (rc *RedisCache[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	raw, err := rc.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrCacheMiss
		}
		return zero, err
	}

	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, err
	}
	return value, nil
}

func (rc *RedisCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, key, raw, ttl).Err()
}

func (rc *RedisCache[V]) Delete(ctx context.Context, key string) error {
	return rc.client.Del(ctx, key).Err()
}

// Close releases the underlying client.
func (rc *RedisCache[V]) Close() error {
	return rc.client.Close()
}
