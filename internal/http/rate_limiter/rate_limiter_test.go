package rate_limiter

import (
	"testing"
	"time"
)

func TestAllowBurstThenDeny(t *testing.T) {
	l := New(1, 3)
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("expected request beyond burst to be denied")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("expected other visitor to have its own bucket")
	}
}

func TestCleanupForgetsIdleVisitors(t *testing.T) {
	l := New(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.GetVisitor("old")
	now = now.Add(10 * time.Minute)
	l.GetVisitor("new")

	l.Cleanup(5 * time.Minute)
	if l.Visitors() != 1 {
		t.Errorf("expected 1 visitor after cleanup, got %d", l.Visitors())
	}
}
