package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	now := time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		if !rl.allow("10.0.0.1:1234", now) {
			t.Fatalf("request %d should be within the limit", i)
		}
	}
	if rl.allow("10.0.0.1:1234", now) {
		t.Errorf("request over the limit should be rejected")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

	rl.allow("10.0.0.1:1234", now)
	if rl.allow("10.0.0.1:1234", now.Add(30*time.Second)) {
		t.Errorf("second request inside the window should be rejected")
	}
	if !rl.allow("10.0.0.1:1234", now.Add(2*time.Minute)) {
		t.Errorf("request after the window elapsed should be allowed again")
	}
}

func TestRateLimiterCountsPerAddress(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

	rl.allow("10.0.0.1:1234", now)
	if !rl.allow("10.0.0.2:1234", now) {
		t.Errorf("a different address must not share the counter")
	}
}
