package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T) (Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return Limiter{Client: client, Prefix: "rl:test:"}, mr
}

func TestLimiterSlidingWindow(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	ctx := context.Background()
	window := 2 * time.Second

	for i := 0; i < 2; i++ {
		allowed, remaining, _, err := limiter.Allow(ctx, "phone", window, 2)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i)
		}
		if remaining != 1-i {
			t.Fatalf("request %d: remaining = %d", i, remaining)
		}
	}

	allowed, remaining, _, err := limiter.Allow(ctx, "phone", window, 2)
	if err != nil {
		t.Fatalf("allow over limit: %v", err)
	}
	if allowed {
		t.Fatal("third request should be blocked")
	}
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}

	mr.FastForward(window)

	if allowed, _, _, err = limiter.Allow(ctx, "phone", window, 2); err != nil {
		t.Fatalf("allow after window: %v", err)
	} else if !allowed {
		t.Fatal("request after the window elapsed should be allowed")
	}
}

func TestLimiterDisabledWithoutClient(t *testing.T) {
	allowed, _, _, err := Limiter{}.Allow(context.Background(), "any", time.Second, 1)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !allowed {
		t.Fatal("nil client should disable limiting")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	if allowed, _, _, _ := limiter.Allow(ctx, "a", time.Minute, 1); !allowed {
		t.Fatal("first request for key a should pass")
	}
	if allowed, _, _, _ := limiter.Allow(ctx, "a", time.Minute, 1); allowed {
		t.Fatal("second request for key a should be blocked")
	}
	if allowed, _, _, _ := limiter.Allow(ctx, "b", time.Minute, 1); !allowed {
		t.Fatal("key b should have its own window")
	}
}
