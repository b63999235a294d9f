package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// FixedWindowLimiter implements a fixed-window rate limiter on Redis:
// INCR key; on the first hit the key gets the window as its expiry.
// key should already include identity, route and window bucket.
type FixedWindowLimiter struct {
	rdb *goredis.Client
}

func NewFixedWindowLimiter(c *Client) *FixedWindowLimiter {
	if c == nil {
		return &FixedWindowLimiter{rdb: nil}
	}
	return &FixedWindowLimiter{rdb: c.rdb}
}

type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // 0 if allowed
	ResetAt    time.Time     // window end (best-effort)
	Count      int
}

// AllowFixedWindow reports whether a request is allowed for key+window.
// A nil Redis client fails open.
func (l *FixedWindowLimiter) AllowFixedWindow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 {
		return Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if l.rdb == nil {
		return Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}

	// Lua keeps INCR + first-hit expiry atomic.
	// returns: {count, ttl_ms}
	const lua = `
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {c, ttl}
`
	ttlms := window.Milliseconds()
	if ttlms <= 0 {
		ttlms = 60000
	}

	res, err := l.rdb.Eval(ctx, lua, []string{key}, ttlms).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit redis eval: %w", err)
	}

	count, ttlGot, err := decodeEvalReply(res)
	if err != nil {
		return Decision{}, err
	}

	remaining := limit - count
	allowed := count <= limit

	d := Decision{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: max(0, remaining),
		Count:     count,
		ResetAt:   time.Now().Add(ttlGot),
	}

	if !allowed {
		if ttlGot > 0 {
			d.RetryAfter = ttlGot
		} else {
			d.RetryAfter = window
		}
	}

	return d, nil
}

// decodeEvalReply validates the {count, ttl_ms} array the script returns.
// Anything else is treated as an eval error, never a panic.
func decodeEvalReply(res any) (int, time.Duration, error) {
	arr, ok := res.([]any)
	if !ok || len(arr) != 2 {
		return 0, 0, fmt.Errorf("ratelimit redis eval: unexpected result type")
	}

	count, ok := arr[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("ratelimit redis eval: unexpected count type")
	}
	ttlms, ok := arr[1].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("ratelimit redis eval: unexpected ttl type")
	}

	return int(count), time.Duration(ttlms) * time.Millisecond, nil
}
