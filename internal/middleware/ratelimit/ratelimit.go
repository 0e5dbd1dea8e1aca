// Package ratelimit enforces the per-client search-call quota at the request
// layer. The pipeline itself never rate-limits; quota is a caller-side policy.
package ratelimit

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

type bucket struct {
	mu         sync.Mutex
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a per-key token bucket. Keys are client IPs, or the
// X-Session-ID header when present so one NAT does not starve everyone
// behind it.
type RateLimiter struct {
	mu            sync.RWMutex
	buckets       map[string]*bucket
	maxTokens     int
	refillRate    time.Duration
	logger        *zap.Logger
	cleanupTicker *time.Ticker
	done          chan struct{}
	stopOnce      sync.Once
}

type Config struct {
	CallsPerMinute int
	Logger         *zap.Logger
}

func New(cfg Config) *RateLimiter {
	if cfg.CallsPerMinute == 0 {
		cfg.CallsPerMinute = 5
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	rl := &RateLimiter{
		buckets:       make(map[string]*bucket),
		maxTokens:     cfg.CallsPerMinute,
		refillRate:    time.Minute / time.Duration(cfg.CallsPerMinute),
		logger:        cfg.Logger,
		cleanupTicker: time.NewTicker(5 * time.Minute),
		done:          make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Copy the key out of fiber's reused request buffer; it is retained
		// past the handler as a bucket map key.
		key := utils.CopyString(c.IP())
		if sessionID := c.Get("X-Session-ID"); sessionID != "" {
			key = utils.CopyString(sessionID)
		}

		if !rl.allow(key) {
			rl.logger.Warn("Search rate limit exceeded",
				zap.String("key", key),
				zap.String("ip", c.IP()),
				zap.String("path", c.Path()),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		}

		return c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.RLock()
	b, exists := rl.buckets[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		b, exists = rl.buckets[key]
		if !exists {
			b = &bucket{
				tokens:     rl.maxTokens,
				lastRefill: time.Now(),
			}
			rl.buckets[key] = b
		}
		rl.mu.Unlock()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	refill := int(now.Sub(b.lastRefill) / rl.refillRate)
	if refill > 0 {
		b.tokens = min(rl.maxTokens, b.tokens+refill)
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// cleanup runs until Stop. Ticker.Stop does not close the tick channel, so
// the loop selects on done to terminate.
func (rl *RateLimiter) cleanup() {
	for {
		select {
		case <-rl.done:
			return
		case <-rl.cleanupTicker.C:
			rl.sweep(time.Now())
		}
	}
}

// sweep drops buckets idle long enough that a fresh one is equivalent.
func (rl *RateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, b := range rl.buckets {
		b.mu.Lock()
		idle := now.Sub(b.lastRefill) > 10*time.Minute
		b.mu.Unlock()
		if idle {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanupTicker.Stop()
		close(rl.done)
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
