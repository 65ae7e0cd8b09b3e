package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/mementoapp/memento/internal/respond"
)

// RateLimitAuth creates middleware for auth endpoints.
// Counts requests per client IP (X-Forwarded-For / X-Real-IP aware) in a
// sliding window; limit <= 0 disables limiting.
func RateLimitAuth(limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	if limit <= 0 {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return next
		}
	}

	limiter := httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("rate limit exceeded",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			respond.Detail(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		}),
	)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return limiter(next).ServeHTTP
	}
}
