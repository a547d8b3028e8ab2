package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	limiter := NewMemoryLimiter()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("1.2.3.4", 3, time.Minute))
	}
	assert.False(t, limiter.Allow("1.2.3.4", 3, time.Minute))

	// Other keys have their own window.
	assert.True(t, limiter.Allow("5.6.7.8", 3, time.Minute))
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	limiter := NewMemoryLimiter()

	assert.True(t, limiter.Allow("1.2.3.4", 1, 10*time.Millisecond))
	assert.False(t, limiter.Allow("1.2.3.4", 1, 10*time.Millisecond))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, limiter.Allow("1.2.3.4", 1, 10*time.Millisecond))
}

func TestRateLimitMiddleware(t *testing.T) {
	app := fiber.New()
	app.Post("/forms/contact",
		RateLimit(NewMemoryLimiter(), 2, time.Minute),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/forms/contact", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/forms/contact", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitMiddlewareNilLimiterPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Post("/forms/contact",
		RateLimit(nil, 1, time.Minute),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/forms/contact", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
