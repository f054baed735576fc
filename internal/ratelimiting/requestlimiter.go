package ratelimiting

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RequestLimiter paces outgoing requests to an upstream
type RequestLimiter interface {
	// Wait blocks until a request may be sent.
	// Returns false if ctx is done first or its deadline leaves no room for the request.
	Wait(ctx context.Context) bool
}

type windowLimitRequestLimiter struct {
	limiter *rate.Limiter
}

func (l *windowLimitRequestLimiter) Wait(ctx context.Context) bool {
	return l.limiter.Wait(ctx) == nil
}

// NewWindowLimitRequestLimiter allows at most limit requests per window, all of them at once when idle
func NewWindowLimitRequestLimiter(limit int, window time.Duration) RequestLimiter {
	return &windowLimitRequestLimiter{
		limiter: rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit),
	}
}

type unlimitedRequestLimiter struct{}

func (unlimitedRequestLimiter) Wait(ctx context.Context) bool {
	return ctx.Err() == nil
}

// NewUnlimitedRequestLimiter never waits, for interactive use and tests
func NewUnlimitedRequestLimiter() RequestLimiter {
	return unlimitedRequestLimiter{}
}
