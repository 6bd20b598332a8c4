package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists scenarios in Redis.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore connects to the Redis instance at addr.
func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *RedisStore) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisStore) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}
