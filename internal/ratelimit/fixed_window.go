// Package ratelimit throttles request keys with fixed time windows counted
// in Redis, so a quota holds across every replica sharing the instance.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisCallTimeout = 2 * time.Second

// incrWithExpiry bumps the window counter and arms its expiry on first use,
// atomically, so concurrent requests cannot leave an immortal key behind.
var incrWithExpiry = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Limiter counts requests per key in fixed windows. On Redis errors it
// fails closed: a broken limiter must not wave brute-force traffic through.
type Limiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// New connects a fixed-window limiter to Redis at addr. Keys are namespaced
// under prefix so distinct limiters can share one instance.
func New(addr, password, prefix string, limit int, window time.Duration) (*Limiter, error) {
	if limit <= 0 || window < time.Millisecond {
		return nil, errors.New("rate limiter requires a positive limit and a window of at least 1ms")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("rate limiter redis addr is required")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "leanacademy:ratelimit"
	}
	return &Limiter{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: prefix,
		limit:  limit,
		window: window,
	}, nil
}

// Allow reports whether key still has quota in the current window. The
// Redis round trip is bounded by ctx plus a short internal timeout, so a
// stalled instance cannot hold the request hostage.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}
	windowMs := l.window.Milliseconds()
	slot := time.Now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, redisCallTimeout)
	defer cancel()
	count, err := incrWithExpiry.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false
	}
	return count <= int64(l.limit)
}
