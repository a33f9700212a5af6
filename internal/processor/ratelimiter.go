package processor

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/casemark/taxonomy-mapper/internal/logging"
)

const defaultRPS = 50

// RateLimiter bounds how fast batches are admitted.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewRateLimiter creates a rate limiter allowing rps operations per
// second with a burst of the same size.
func NewRateLimiter(rps int, logger logging.Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultRPS
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		logger:  logger,
	}
}

// Wait blocks until the limiter admits the operation or the context is
// cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Warn("rate limiter wait failed", "error", err)
		return err
	}
	return nil
}

// Allow reports whether an operation may proceed without waiting.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
