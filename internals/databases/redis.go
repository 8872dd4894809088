package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"reporthub_backend/internals/configs"
)

var Redis *redis.Client

// ConnectRedis is optional: with REDIS_URL unset (or unreachable) Redis stays nil
// and callers fall back to a no-op cache.
func ConnectRedis() {
	if configs.RedisURL == "" {
		return
	}
	opt, err := redis.ParseURL(configs.RedisURL)
	if err != nil {
		log.Printf("⚠️ REDIS_URL invalid: %v (cache disabled)", err)
		return
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis ping failed: %v (cache disabled)", err)
		_ = client.Close()
		return
	}
	Redis = client
	log.Println("✅ Redis connected.")
}

func CloseRedis() {
	if Redis != nil {
		_ = Redis.Close()
	}
}
