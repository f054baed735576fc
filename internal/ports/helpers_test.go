package ports_test

import (
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/rinkstats/streaks/internal/ports"
	"github.com/stretchr/testify/require"
)

func newTestDependencies(t *testing.T) ports.HandlerDependencies {
	t.Helper()
	allowedOrigins, err := ports.NewDomainSuffixes("rinkstats.com")
	require.NoError(t, err)

	return ports.HandlerDependencies{
		AllowedOrigins:   allowedOrigins,
		RootLogger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
		SentryMiddleware: func(next http.HandlerFunc) http.HandlerFunc { return next },
		RateLimits: ports.RateLimits{
			IPRefill:     10,
			IPBurst:      100,
			UserIDRefill: 10,
			UserIDBurst:  100,
		},
	}
}
