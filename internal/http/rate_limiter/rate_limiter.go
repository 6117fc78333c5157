package rate_limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out one token bucket per visitor key.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

// New creates a Limiter allowing rps requests per second with burst per visitor.
func New(rps float64, burst int) *Limiter {
	return &Limiter{
		visitors: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// GetVisitor returns the limiter for key, creating it on first use.
func (l *Limiter) GetVisitor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(l.rps, l.burst)
		l.visitors[key] = &clientLimiter{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Allow reports whether key may make a request now.
func (l *Limiter) Allow(key string) bool {
	return l.GetVisitor(key).Allow()
}

// Cleanup forgets visitors not seen for longer than idle.
func (l *Limiter) Cleanup(idle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > idle {
			delete(l.visitors, key)
		}
	}
}

// StartVisitorCleanupLoop runs Cleanup every minute until ctx is done.
func (l *Limiter) StartVisitorCleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup(5 * time.Minute)
		}
	}
}

// Visitors reports how many visitors are tracked.
func (l *Limiter) Visitors() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
