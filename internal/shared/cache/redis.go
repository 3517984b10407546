package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"placement-backend/internal/shared/telemetry"
)

// Redis stores values in a Redis server.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to redisURL and pings it.
func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		telemetry.Warn("cache.redis_invalid_url", map[string]any{"error": err})
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		telemetry.Warn("cache.redis_unreachable", map[string]any{"addr": opts.Addr, "error": err})
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	telemetry.Info("cache.redis_connected", map[string]any{"addr": opts.Addr})
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			telemetry.Debug("cache.redis_get_failed", map[string]any{"key": key, "error": err})
		}
		return nil, false
	}
	return data, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		telemetry.Debug("cache.redis_set_failed", map[string]any{"key": key, "error": err})
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
