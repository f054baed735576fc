package reporting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		error string
		want  string
	}{
		{
			name:  "connection reset by peer",
			error: `query game logs: read tcp [dead:beef:feb1:d745::c001]:64079->[dead:beef::6811:112a]:5432: read: connection reset by peer`,
			want:  `query game logs: read tcp <host>-><host>: read: connection reset by peer`,
		},
		{
			name:  "ipv4",
			error: `dial tcp 10.0.0.12:5432: connect: connection refused`,
			want:  `dial tcp <host>: connect: connection refused`,
		},
		{
			name:  "player and date",
			error: `failed to store game log for player 8478398 on 2024-10-08: constraint violation`,
			want:  `failed to store game log for player <player> on <date>: constraint violation`,
		},
		{
			name:  "short numbers are kept",
			error: `schedule: unexpected status code 502`,
			want:  `schedule: unexpected status code 502`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, c.want, sanitizeError(c.error))
		})
	}

	t.Run("misc ipv6", func(t *testing.T) {
		t.Parallel()
		for _, ip := range []string{`1:2:3:4:5:6:7:8`, `1::`, `1::8`, `1:2:3::8`, `::2:3:4:5:6:7:8`, `::8`, `::`} {
			require.Equal(t, "<host>", sanitizeError("["+ip+"]:1234"), ip)
		}
	})
}

func TestMetaFromContext(t *testing.T) {
	t.Parallel()

	ctx := AddTagsToContext(context.Background(), map[string]string{"operation": "leaderboard"})
	ctx = AddExtrasToContext(ctx, map[string]string{"query": "activeFilter=last5"})
	ctx = SetUserIDInContext(ctx, "user-1")

	meta := MetaFromContext(ctx)
	require.Equal(t, map[string]string{"operation": "leaderboard"}, meta.tags)
	require.Equal(t, map[string]string{"query": "activeFilter=last5"}, meta.extras)
	require.Equal(t, "user-1", meta.userID)

	// Modifying the copy does not leak into the context
	meta.tags["operation"] = "changed"
	require.Equal(t, "leaderboard", MetaFromContext(ctx).tags["operation"])
}

func TestAddMetaMiddleware(t *testing.T) {
	t.Parallel()

	var meta Meta
	handler := NewAddMetaMiddleware("schedule")(func(w http.ResponseWriter, r *http.Request) {
		meta = MetaFromContext(r.Context())
	})

	request := httptest.NewRequest(http.MethodGet, "/v1/schedule/DET?x=1", nil)
	request.Header.Set("User-Agent", "rinkstats/1.0")
	request.Header.Set("X-User-Id", "user-2")
	handler(httptest.NewRecorder(), request)

	require.Equal(t, map[string]string{
		"operation":  "schedule",
		"userAgent":  "rinkstats/1.0",
		"methodPath": "GET /v1/schedule/DET",
	}, meta.tags)
	require.Equal(t, "x=1", meta.extras["query"])
	require.Equal(t, "user-2", meta.userID)
	require.False(t, meta.startedAt.IsZero())
}

func TestReportWithoutHub(t *testing.T) {
	t.Parallel()
	Report(context.Background(), errors.New("boom"), map[string]string{"stage": "test"})
	Report(context.Background(), nil)
}
