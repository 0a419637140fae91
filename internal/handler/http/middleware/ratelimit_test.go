package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeLimiter struct {
	allowed    bool
	err        error
	identifier string
}

func (l *fakeLimiter) Allow(ctx context.Context, identifier string, limit int, window time.Duration) (bool, error) {
	l.identifier = identifier
	return l.allowed, l.err
}

func serveLimited(l RateLimiter) *httptest.ResponseRecorder {
	h := RateLimit(l, "auth", 5, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		l := &fakeLimiter{allowed: true}
		rec := serveLimited(l)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "auth:10.0.0.7", l.identifier)
	})

	t.Run("denied", func(t *testing.T) {
		rec := serveLimited(&fakeLimiter{allowed: false})

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("limiter down", func(t *testing.T) {
		rec := serveLimited(&fakeLimiter{err: errors.New("connection refused")})

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
