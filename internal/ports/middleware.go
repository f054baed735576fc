package ports

import (
	"log/slog"
	"net/http"

	"github.com/rinkstats/streaks/internal/logging"
	"github.com/rinkstats/streaks/internal/ratelimiting"
	"github.com/rinkstats/streaks/internal/reporting"
)

func NewRateLimitMiddleware(rateLimiter ratelimiting.RequestRateLimiter, onLimitExceeded http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !rateLimiter.Consume(r) {
				onLimitExceeded(w, r)
				return
			}

			next(w, r)
		}
	}
}

// ComposeMiddlewares applies the middlewares so the first one runs outermost
func ComposeMiddlewares(middlewares ...func(http.HandlerFunc) http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(h http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}
}

// RateLimits are the token bucket parameters of one route, per client IP and per user id
type RateLimits struct {
	IPRefill     ratelimiting.RefillPerSecond
	IPBurst      ratelimiting.BurstSize
	UserIDRefill ratelimiting.RefillPerSecond
	UserIDBurst  ratelimiting.BurstSize
}

func onRateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
}

func newRateLimitMiddlewares(limits RateLimits) []func(http.HandlerFunc) http.HandlerFunc {
	// The limiters live as long as the process, so the cleanup is never stopped
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(limits.IPRefill, limits.IPBurst)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(ipLimiter, ratelimiting.IPKeyFunc)

	userIDLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(limits.UserIDRefill, limits.UserIDBurst)
	userIDRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		// NOTE: Rate limiting based on user controlled value
		userIDLimiter,
		ratelimiting.UserIDKeyFunc,
	)

	return []func(http.HandlerFunc) http.HandlerFunc{
		NewRateLimitMiddleware(ipRateLimiter, onRateLimitExceeded),
		NewRateLimitMiddleware(userIDRateLimiter, onRateLimitExceeded),
	}
}

// HandlerDependencies are shared by all the route handlers
type HandlerDependencies struct {
	AllowedOrigins   *DomainSuffixes
	RootLogger       *slog.Logger
	SentryMiddleware func(http.HandlerFunc) http.HandlerFunc
	RateLimits       RateLimits
}

func (deps HandlerDependencies) middleware(route string) func(http.HandlerFunc) http.HandlerFunc {
	middlewares := []func(http.HandlerFunc) http.HandlerFunc{
		buildMetricsMiddleware(route),
		logging.NewRequestLoggerMiddleware(deps.RootLogger),
		deps.SentryMiddleware,
		reporting.NewAddMetaMiddleware(route),
		BuildCORSMiddleware(deps.AllowedOrigins),
	}
	middlewares = append(middlewares, newRateLimitMiddlewares(deps.RateLimits)...)

	return ComposeMiddlewares(middlewares...)
}
