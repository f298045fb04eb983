package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

const loginPrefix = "leanacademy:ratelimit:login"

func TestLoginQuotaBlocksAfterLimit(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := New(redis.Addr(), "", loginPrefix, 2, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}

	ctx := context.Background()
	// 1. Two attempts from one address fit the quota.
	if !limiter.Allow(ctx, "203.0.113.9") {
		t.Fatal("first attempt should pass")
	}
	if !limiter.Allow(ctx, "203.0.113.9") {
		t.Fatal("second attempt should pass")
	}
	// 2. The third is throttled.
	if limiter.Allow(ctx, "203.0.113.9") {
		t.Fatal("third attempt should be blocked")
	}
	// 3. An unrelated address keeps its own quota.
	if !limiter.Allow(ctx, "198.51.100.4") {
		t.Fatal("other address should not share the quota")
	}
}

func TestQuotaResetsInNextWindow(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := New(redis.Addr(), "", loginPrefix, 1, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}

	ctx := context.Background()
	if !limiter.Allow(ctx, "203.0.113.9") {
		t.Fatal("first attempt should pass")
	}
	if limiter.Allow(ctx, "203.0.113.9") {
		t.Fatal("second attempt in the same window should be blocked")
	}

	// Window slots derive from wall time, so wait out the current one.
	time.Sleep(75 * time.Millisecond)
	if !limiter.Allow(ctx, "203.0.113.9") {
		t.Fatal("attempt in the next window should pass")
	}
}

func TestLimiterFailsClosedWhenRedisDown(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := New(redis.Addr(), "", loginPrefix, 5, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	redis.Close()
	if limiter.Allow(context.Background(), "203.0.113.9") {
		t.Fatal("limiter should fail closed on redis errors")
	}
}

func TestLimiterHonorsCallerContext(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := New(redis.Addr(), "", loginPrefix, 5, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if limiter.Allow(ctx, "203.0.113.9") {
		t.Fatal("cancelled request should not pass the limiter")
	}
}

func TestLimiterRejectsBadConfig(t *testing.T) {
	if _, err := New("", "", loginPrefix, 5, time.Minute); err == nil {
		t.Fatal("expected error for empty redis addr")
	}
	if _, err := New("localhost:6379", "", loginPrefix, 0, time.Minute); err == nil {
		t.Fatal("expected error for zero limit")
	}
	if _, err := New("localhost:6379", "", loginPrefix, 5, 0); err == nil {
		t.Fatal("expected error for zero window")
	}
}
