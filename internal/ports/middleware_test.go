package ports_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rinkstats/streaks/internal/ports"
	"github.com/rinkstats/streaks/internal/ratelimiting"
	"github.com/stretchr/testify/require"
)

func TestComposeMiddlewares(t *testing.T) {
	t.Parallel()

	order := []string{}
	record := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+" before")
				next(w, r)
				order = append(order, name+" after")
			}
		}
	}

	handler := ports.ComposeMiddlewares(record("outer"), record("middle"), record("inner"))(
		func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		},
	)
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{
		"outer before", "middle before", "inner before",
		"handler",
		"inner after", "middle after", "outer after",
	}, order)
}

func TestComposeNoMiddlewares(t *testing.T) {
	t.Parallel()

	called := false
	handler := ports.ComposeMiddlewares()(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, called)
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	limiter, stop := ratelimiting.NewTokenBucketRateLimiter(0, 2)
	t.Cleanup(stop)
	rateLimiter := ratelimiting.NewRequestBasedRateLimiter(limiter, ratelimiting.IPKeyFunc)

	handler := ports.NewRateLimitMiddleware(rateLimiter, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	makeRequest := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		handler(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, makeRequest("10.0.0.1:1234"))
	require.Equal(t, http.StatusOK, makeRequest("10.0.0.1:5678"))
	require.Equal(t, http.StatusTooManyRequests, makeRequest("10.0.0.1:1234"))

	// Other clients have their own bucket
	require.Equal(t, http.StatusOK, makeRequest("10.0.0.2:1234"))
}
