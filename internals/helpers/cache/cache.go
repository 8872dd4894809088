package cache

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-encodable values by key.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// New returns a Redis-backed cache, or a no-op cache when client is nil.
func New(client *redis.Client, namespace string) Cache {
	if client == nil {
		return Noop{}
	}
	return &RedisCache{client: client, ns: strings.TrimSuffix(namespace, ":") + ":"}
}

// =========================
// Redis
// =========================

type RedisCache struct {
	client *redis.Client
	ns     string
}

func (r *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := r.client.Get(ctx, r.ns+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := sonic.Unmarshal(b, dst); err != nil {
		// corrupt entry, drop it
		_ = r.client.Del(ctx, r.ns+key).Err()
		return false, nil
	}
	return true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.ns+key, b, ttl).Err()
}

func (r *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, r.ns+prefix+"*", 200).Iterator()
	keys := make([]string, 0, 32)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	log.Printf("[CACHE] invalidating %d key(s) under %s%s", len(keys), r.ns, prefix)
	return r.client.Del(ctx, keys...).Err()
}

// =========================
// No-op
// =========================

type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)         { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) DeletePrefix(context.Context, string) error            { return nil }
