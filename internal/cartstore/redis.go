package cartstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Abandoned carts are kept for a month, refreshed on every mutation.
const cartRetention = 30 * 24 * time.Hour

// RedisKV persists cart blobs in Redis.
type RedisKV struct {
	rdb *redis.Client
}

// NewRedisKV wraps an existing Redis client.
func NewRedisKV(rdb *redis.Client) *RedisKV {
	return &RedisKV{rdb: rdb}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, key, value, cartRetention).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}
