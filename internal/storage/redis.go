package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores keys in Redis under a common prefix, so one login can be
// shared by several machines pointing at the same instance.
type RedisKV struct {
	client *redis.Client
	prefix string
}

var _ KV = (*RedisKV)(nil)

// NewRedisKV connects to redisURL (redis:// or rediss://) and pings it.
func NewRedisKV(ctx context.Context, redisURL, prefix string) (*RedisKV, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisKVFromClient(client, prefix), nil
}

// NewRedisKVFromClient wraps an existing client without checking connectivity.
func NewRedisKVFromClient(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) key(name string) string {
	return r.prefix + name
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}

	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
