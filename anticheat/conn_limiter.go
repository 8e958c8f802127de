package anticheat

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// connLimiter throttles connection attempts per player id. It protects the
// gate against reconnect storms; the in-game action and damage windows stay
// untouched by it.
type connLimiter struct {
	limiters map[string]*rate.Limiter
	lastUsed map[string]time.Time
	mu       sync.RWMutex
	r        rate.Limit
	b        int
	cleanup  time.Duration
	stopCh   chan struct{}
}

// newConnLimiter creates a connection limiter allowing r attempts per
// second with a burst of b. Entries idle for two cleanup intervals are
// dropped.
func newConnLimiter(r rate.Limit, b int, cleanup time.Duration) *connLimiter {
	limiter := &connLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastUsed: make(map[string]time.Time),
		r:        r,
		b:        b,
		cleanup:  cleanup,
		stopCh:   make(chan struct{}),
	}

	go limiter.cleanupLoop()

	return limiter
}

// allow checks if a connection attempt of the given player should pass.
func (c *connLimiter) allow(playerID string) bool {
	// Fast path: a read lock is enough for a known player. lastUsed is not
	// refreshed here; worst case the limiter is recreated on cleanup, which
	// resets the rate in the player's favor.
	c.mu.RLock()
	limiter, exists := c.limiters[playerID]
	c.mu.RUnlock()

	if exists {
		return limiter.Allow()
	}

	c.mu.Lock()
	// Double-check after escalation, another goroutine could have added it.
	limiter, exists = c.limiters[playerID]
	if !exists {
		limiter = rate.NewLimiter(c.r, c.b)
		c.limiters[playerID] = limiter
	}
	c.lastUsed[playerID] = time.Now()
	c.mu.Unlock()

	return limiter.Allow()
}

func (c *connLimiter) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.limiters)
}

func (c *connLimiter) stop() {
	close(c.stopCh)
}

func (c *connLimiter) cleanupLoop() {
	ticker := time.NewTicker(c.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for playerID, lastUsed := range c.lastUsed {
				if now.Sub(lastUsed) > c.cleanup*2 {
					delete(c.limiters, playerID)
					delete(c.lastUsed, playerID)
				}
			}
			c.mu.Unlock()
		}
	}
}
