package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ymatsuda/auth-service/internal/infrastructure/redis"
	appctx "github.com/ymatsuda/auth-service/internal/pkg/context"
	"github.com/ymatsuda/auth-service/internal/transport/http/response"
)

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = appctx.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got == "" {
		t.Fatalf("expected request id on context")
	}
	if rec.Header().Get(HeaderXRequestID) != got {
		t.Fatalf("expected header to match context id")
	}
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = appctx.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "upstream-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "upstream-1" {
		t.Fatalf("expected incoming id preserved, got %q", got)
	}
}

type fakeLimiter struct {
	dec redis.Decision
	err error
}

func (f *fakeLimiter) AllowFixedWindow(ctx context.Context, key string, limit int, window time.Duration) (redis.Decision, error) {
	return f.dec, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_Allowed_PassesThrough(t *testing.T) {
	lim := &fakeLimiter{dec: redis.Decision{Allowed: true, Limit: 5, Remaining: 4}}
	h := RateLimitFixedWindow(lim, FixedWindowConfig{RouteKey: "register", Limit: 5, Window: time.Minute}, response.WriteError)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimit_Denied_Returns429WithRetryAfter(t *testing.T) {
	lim := &fakeLimiter{dec: redis.Decision{Allowed: false, Limit: 1, RetryAfter: 30 * time.Second}}
	h := RateLimitFixedWindow(lim, FixedWindowConfig{RouteKey: "register", Limit: 1, Window: time.Minute}, response.WriteError)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "30" {
		t.Fatalf("expected Retry-After=30, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimit_LimiterError_FailsOpen(t *testing.T) {
	lim := &fakeLimiter{err: errors.New("redis down")}
	h := RateLimitFixedWindow(lim, FixedWindowConfig{RouteKey: "register", Limit: 1, Window: time.Minute}, response.WriteError)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rec.Code)
	}
}

func TestRateLimit_NilLimiter_PassesThrough(t *testing.T) {
	h := RateLimitFixedWindow(nil, FixedWindowConfig{RouteKey: "register", Limit: 1, Window: time.Minute}, response.WriteError)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.9, 192.168.1.1")
	req.RemoteAddr = "127.0.0.1:5555"

	if ip := clientIP(req); ip != "10.0.0.9" {
		t.Fatalf("expected forwarded ip, got %q", ip)
	}
}
