package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is a byte cache. Misses and backend failures both report ok=false.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// GetJSON decodes a cached JSON value into T.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool) {
	var out T
	if s == nil {
		return out, false
	}
	data, ok := s.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}

// SetJSON encodes value as JSON and stores it.
func SetJSON[T any](ctx context.Context, s Store, key string, value T, ttl time.Duration) {
	if s == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.Set(ctx, key, data, ttl)
}

// New builds a memory cache, fronting Redis when redisURL is set and reachable.
func New(ctx context.Context, redisURL string, maxEntries int) Store {
	l1 := NewMemory(maxEntries, nil)
	if redisURL == "" {
		return l1
	}
	l2, err := NewRedis(ctx, redisURL)
	if err != nil {
		return l1
	}
	return &Tiered{L1: l1, L2: l2}
}
