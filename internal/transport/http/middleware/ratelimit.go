package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ymatsuda/auth-service/internal/domain"
	"github.com/ymatsuda/auth-service/internal/infrastructure/redis"
)

type RateLimiter interface {
	AllowFixedWindow(ctx context.Context, key string, limit int, window time.Duration) (redis.Decision, error)
}

// WriteErrFunc writes a domain error as an HTTP response; injected so the
// middleware does not depend on the response package.
type WriteErrFunc func(w http.ResponseWriter, r *http.Request, err error)

// FixedWindowConfig defines the configuration for a fixed-window rate limit.
type FixedWindowConfig struct {
	RouteKey string
	Limit    int
	Window   time.Duration
}

// RateLimitFixedWindow throttles a route per client IP. Limiter failures
// fail open to preserve availability.
func RateLimitFixedWindow(limiter RateLimiter, cfg FixedWindowConfig, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.RouteKey == "" {
		cfg.RouteKey = "unknown"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			bucket := windowBucket(time.Now(), cfg.Window)
			key := fmt.Sprintf("rl:%s:ip:%s:%d", cfg.RouteKey, clientIP(r), bucket)

			dec, err := limiter.AllowFixedWindow(r.Context(), key, cfg.Limit, cfg.Window)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if !dec.Allowed {
				if dec.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(dec.RetryAfter.Seconds())))
				}
				writeErr(w, r, domain.ErrRateLimited(cfg.RouteKey))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func windowBucket(now time.Time, window time.Duration) int64 {
	sec := int64(window.Seconds())
	if sec <= 0 {
		sec = 60
	}
	return now.Unix() / sec
}

func clientIP(r *http.Request) string {
	// Trust X-Forwarded-For ONLY behind a proxy you control.
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xff != "" {
		parts := strings.Split(xff, ",")
		ip := strings.TrimSpace(parts[0])
		if ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
