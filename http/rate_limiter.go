package http

import (
	"sync"
	"time"
)

const (
	bucketIdleThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
)

type limit struct {
	capacity int
	window   time.Duration
}

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter gives each client a bucket of capacity requests that is
// refilled in full once per window. Routes with their own limit get a
// separate bucket per client; every other route shares the default one.
type RateLimiter struct {
	mu          sync.Mutex
	defaults    limit
	routes      map[string]limit
	buckets     map[string]*clientBucket
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		defaults:    limit{capacity: capacity, window: window},
		routes:      make(map[string]limit),
		buckets:     make(map[string]*clientBucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// SetRouteLimit overrides the default limit for requests to route, matched
// against the request path.
func (rl *RateLimiter) SetRouteLimit(route string, capacity int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.routes[route] = limit{capacity: capacity, window: window}
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.lastRefill) > bucketIdleThreshold {
			delete(rl.buckets, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

// Allow takes a token from the client's default bucket.
func (rl *RateLimiter) Allow(client string) bool {
	return rl.AllowRoute("", client)
}

// AllowRoute takes a token from the client's bucket for route.
func (rl *RateLimiter) AllowRoute(route, client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lim, ok := rl.routes[route]
	key := route + "|" + client
	if !ok {
		lim, key = rl.defaults, client
	}

	now := rl.now()
	bucket, ok := rl.buckets[key]
	if !ok {
		rl.buckets[key] = &clientBucket{tokens: lim.capacity - 1, lastRefill: now}
		return lim.capacity > 0
	}

	if now.Sub(bucket.lastRefill) >= lim.window {
		bucket.tokens = lim.capacity
		bucket.lastRefill = now
	}
	if bucket.tokens <= 0 {
		return false
	}
	bucket.tokens--
	return true
}
