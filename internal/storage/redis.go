package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisKV implements KV using go-redis/v9. Slots never expire.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV creates a new RedisKV from a Redis URL.
func NewRedisKV(redisURL string) (*RedisKV, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisKV{client: redis.NewClient(opts)}, nil
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, RedisSlotKey(key), value, 0).Err()
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, RedisSlotKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, RedisSlotKey(key)).Err()
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
