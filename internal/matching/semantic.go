package matching

import (
	"context"
	"errors"
	"math"
	"time"

	"placement-backend/internal/shared/cache"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/telemetry"
	"placement-backend/internal/shared/util"
)

// DefaultEmbeddingTimeout bounds a single embedding call.
const DefaultEmbeddingTimeout = 5 * time.Second

var ErrEmptyEmbedding = errors.New("embedding backend returned an empty vector")

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CachedEmbedder memoizes vectors by model and text.
type CachedEmbedder struct {
	Inner Embedder
	Cache cache.Store
	Model string
	TTL   time.Duration
}

// Embed returns the cached vector or computes and stores it.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := util.CacheKey("emb", e.Model, text)
	if vec, ok := cache.GetJSON[[]float32](ctx, e.Cache, key); ok && len(vec) > 0 {
		return vec, nil
	}
	vec, err := e.Inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, e.Cache, key, vec, e.TTL)
	return vec, nil
}

// embedWithTimeout calls the embedder under its own deadline. A nil embedder
// reports unavailable without logging.
func embedWithTimeout(ctx context.Context, e Embedder, text string, timeout time.Duration) ([]float32, bool) {
	if e == nil {
		return nil, false
	}
	if timeout <= 0 {
		timeout = DefaultEmbeddingTimeout
	}
	embedCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	vec, err := e.Embed(embedCtx, text)
	if err == nil && len(vec) == 0 {
		err = ErrEmptyEmbedding
	}
	if err != nil {
		if ctx.Err() == nil {
			metrics.IncEmbeddingFailures()
			telemetry.Warn("matching.embed_failed", map[string]any{
				"error": err,
			})
		}
		return nil, false
	}
	return vec, true
}

// cosine32 returns the cosine of two embeddings clamped to [0,1]. Vectors of
// different lengths or zero norm score 0.
func cosine32(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp01(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
