package logging

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

const missing = "<missing>"

func headerOrMissing(r *http.Request, name string) string {
	if value := r.Header.Get(name); value != "" {
		return value
	}
	return missing
}

// NewRequestLoggerMiddleware stores a request scoped logger in the request context
func NewRequestLoggerMiddleware(logger *slog.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			userAgent := r.UserAgent()
			if userAgent == "" {
				userAgent = missing
			}

			requestLogger := logger.With(
				slog.String("requestId", requestID),
				slog.String("userId", headerOrMissing(r, "X-User-Id")),
				slog.String("userAgent", userAgent),
				slog.String("methodPath", r.Method+" "+r.URL.Path),
			)

			next(w, r.WithContext(AddToContext(r.Context(), requestLogger)))
		}
	}
}
