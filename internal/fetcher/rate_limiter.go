package fetcher

import (
	"context"
	"sync"
	"time"
)

// RateLimiter ограничивает число одновременных запросов и RPM на хост.
// Используется недельным сборщиком полных текстов, чтобы не долбить сайты.
type RateLimiter struct {
	maxConcurrent int
	rpm           int
	hosts         map[string]*hostLimiter
	mu            sync.Mutex
}

type hostLimiter struct {
	sem      chan struct{}
	lastTime time.Time
	requests int
	mu       sync.Mutex
}

func NewRateLimiter(maxConcurrent, rpm int) *RateLimiter {
	return &RateLimiter{
		maxConcurrent: maxConcurrent,
		rpm:           rpm,
		hosts:         make(map[string]*hostLimiter),
	}
}

func (rl *RateLimiter) Wait(ctx context.Context, host string) error {
	rl.mu.Lock()
	limiter, exists := rl.hosts[host]
	if !exists {
		limiter = &hostLimiter{
			sem: make(chan struct{}, rl.maxConcurrent),
		}
		rl.hosts[host] = limiter
	}
	rl.mu.Unlock()

	// Acquire semaphore (concurrency control)
	select {
	case limiter.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	defer func() { <-limiter.sem }()

	// RPM throttle
	limiter.mu.Lock()
	now := time.Now()

	if now.Sub(limiter.lastTime) > time.Minute {
		limiter.requests = 0
		limiter.lastTime = now
	}

	if limiter.requests >= rl.rpm {
		waitTime := time.Minute - now.Sub(limiter.lastTime)
		limiter.mu.Unlock()

		select {
		case <-time.After(waitTime):
			limiter.mu.Lock()
			limiter.requests = 1
			limiter.lastTime = time.Now()
			limiter.mu.Unlock()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	limiter.requests++
	limiter.mu.Unlock()

	return nil
}
