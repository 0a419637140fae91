package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

type RateLimiter interface {
	Allow(ctx context.Context, identifier string, limit int, window time.Duration) (bool, error)
}

// RateLimit caps requests per client IP. Limiter failures let the request through.
func RateLimit(rl RateLimiter, scope string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			identifier := scope + ":" + clientIP(r)

			allowed, err := rl.Allow(r.Context(), identifier, limit, window)
			if err != nil {
				slog.Warn("rate limiter unavailable", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			if !allowed {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				response.TooManyRequests(w, "Rate limit exceeded. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
