package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
	"golang.org/x/time/rate"
)

// RateLimited guards a [SearchProvider] with a token bucket.
type RateLimited struct {
	next    SearchProvider
	limiter *rate.Limiter
}

// NewRateLimited allows perSecond calls per second to next, with bursts of up to burst calls.
func NewRateLimited(next SearchProvider, perSecond float64, burst int) *RateLimited {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Name returns the wrapped provider's name.
func (r *RateLimited) Name() string {
	return r.next.Name()
}

// Search forwards to the wrapped provider when a token is available.
func (r *RateLimited) Search(ctx context.Context, query string) ([]models.Video, error) {
	if !r.limiter.Allow() {
		return nil, fmt.Errorf("%w: %s", shared.ErrRateLimited, r.next.Name())
	}
	return r.next.Search(ctx, query)
}
