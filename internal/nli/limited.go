package nli

import (
	"context"

	"golang.org/x/time/rate"
)

// LimitedProvider throttles calls to the underlying provider. Hosted APIs
// rate-limit by requests per second; waiting here keeps retries and 429
// handling out of the callers.
type LimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a provider with a request rate limit
func WithRateLimit(inner Provider, requestsPerSec float64, burst int) *LimitedProvider {
	if burst < 1 {
		burst = 1
	}
	return &LimitedProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), burst),
	}
}

// Name returns the wrapped provider's name
func (p *LimitedProvider) Name() string {
	return p.inner.Name()
}

// Models delegates to the wrapped provider
func (p *LimitedProvider) Models() (string, string) {
	return p.inner.Models()
}

// IsAvailable delegates to the wrapped provider without consuming a token
func (p *LimitedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Classify waits for the rate limiter before delegating
func (p *LimitedProvider) Classify(ctx context.Context, premise, hypothesis string) (Result, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}
	return p.inner.Classify(ctx, premise, hypothesis)
}

// Embed waits for the rate limiter before delegating
func (p *LimitedProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.Embed(ctx, text)
}
