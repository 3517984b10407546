package cache

import (
	"context"
	"time"
)

// Tiered checks L1 first, then L2, populating L1 on an L2 hit.
type Tiered struct {
	L1    Store
	L2    Store
	L1TTL time.Duration
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if data, ok := t.L1.Get(ctx, key); ok {
		return data, true
	}
	data, ok := t.L2.Get(ctx, key)
	if !ok {
		return nil, false
	}
	ttl := t.L1TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	t.L1.Set(ctx, key, data, ttl)
	return data, true
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	t.L1.Set(ctx, key, value, ttl)
	t.L2.Set(ctx, key, value, ttl)
}
