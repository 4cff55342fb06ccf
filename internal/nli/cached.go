package nli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/halidex/internal/cache"
)

// CachedProvider memoizes classification and embedding results. Keys include
// the provider name and model so switching backends never serves stale
// cross-model results.
type CachedProvider struct {
	inner Provider
	cache cache.Cache
	ttl   time.Duration
}

// WithCache wraps a provider with response caching
func WithCache(inner Provider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, cache: c, ttl: ttl}
}

// Name returns the wrapped provider's name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// Models delegates to the wrapped provider
func (p *CachedProvider) Models() (string, string) {
	return p.inner.Models()
}

// IsAvailable delegates to the wrapped provider
func (p *CachedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Classify returns a cached result when available
func (p *CachedProvider) Classify(ctx context.Context, premise, hypothesis string) (Result, error) {
	classifyModel, _ := p.inner.Models()
	key := cache.Key("classify", p.inner.Name(), classifyModel, premise, hypothesis)

	if data, found := p.cache.Get(key); found {
		var result Result
		if err := json.Unmarshal(data, &result); err == nil {
			return result, nil
		}
		// Corrupt entry: fall through to a fresh call
	}

	result, err := p.inner.Classify(ctx, premise, hypothesis)
	if err != nil {
		return Result{}, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = p.cache.Set(key, data, p.ttl)
	}
	return result, nil
}

// Embed returns a cached vector when available
func (p *CachedProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	_, embedModel := p.inner.Models()
	key := cache.Key("embed", p.inner.Name(), embedModel, text)

	if data, found := p.cache.Get(key); found {
		var vector []float64
		if err := json.Unmarshal(data, &vector); err == nil && len(vector) > 0 {
			return vector, nil
		}
	}

	vector, err := p.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vector); err == nil {
		_ = p.cache.Set(key, data, p.ttl)
	}
	return vector, nil
}
