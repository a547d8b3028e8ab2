package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"zenpeople/internal/domain/entity"
)

// Limiter decides whether a request identified by key may proceed
// within the current window.
type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// MemoryLimiter is a fixed-window counter kept in process memory. It is
// the fallback when Redis is unavailable, and the default in tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count     int
	windowEnd time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*bucket)}
}

func (m *MemoryLimiter) Allow(key string, limit int, window time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	b, ok := m.buckets[key]
	if !ok || now.After(b.windowEnd) {
		m.buckets[key] = &bucket{count: 1, windowEnd: now.Add(window)}
		return true
	}
	if b.count >= limit {
		return false
	}
	b.count++
	return true
}

// RateLimit returns a fiber middleware that throttles requests per
// client IP using the given limiter.
func RateLimit(limiter Limiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil || limit <= 0 {
			return c.Next()
		}
		if !limiter.Allow(c.IP(), limit, window) {
			return c.Status(fiber.StatusTooManyRequests).
				JSON(entity.NewErrorResponse("RATE_LIMITED", "Too many requests, please try again later"))
		}
		return c.Next()
	}
}
