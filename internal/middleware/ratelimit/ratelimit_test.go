package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedApp(t *testing.T, callsPerMinute int) *fiber.App {
	t.Helper()
	rl := New(Config{CallsPerMinute: callsPerMinute})
	t.Cleanup(rl.Stop)

	app := fiber.New()
	app.Post("/search", rl.Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doPost(t *testing.T, app *fiber.App, sessionID string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search", nil)
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRateLimiterEnforcesQuota(t *testing.T) {
	app := newLimitedApp(t, 5)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doPost(t, app, "session-a"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doPost(t, app, "session-a"))
}

func TestRateLimiterKeysBySession(t *testing.T) {
	app := newLimitedApp(t, 2)

	assert.Equal(t, http.StatusOK, doPost(t, app, "session-a"))
	assert.Equal(t, http.StatusOK, doPost(t, app, "session-a"))
	assert.Equal(t, http.StatusTooManyRequests, doPost(t, app, "session-a"))

	// A different session has its own bucket.
	assert.Equal(t, http.StatusOK, doPost(t, app, "session-b"))
}

func TestRateLimiterDefaultsQuota(t *testing.T) {
	rl := New(Config{})
	defer rl.Stop()
	assert.Equal(t, 5, rl.maxTokens)
}

func TestStopTerminatesCleanup(t *testing.T) {
	rl := New(Config{})
	rl.Stop()

	select {
	case <-rl.done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine not signalled to stop")
	}

	// Stop is idempotent.
	rl.Stop()
}

func TestSweepDropsIdleBuckets(t *testing.T) {
	rl := New(Config{CallsPerMinute: 5})
	defer rl.Stop()

	require.True(t, rl.allow("idle"))
	require.True(t, rl.allow("active"))

	rl.mu.RLock()
	idle := rl.buckets["idle"]
	rl.mu.RUnlock()
	idle.mu.Lock()
	idle.lastRefill = time.Now().Add(-11 * time.Minute)
	idle.mu.Unlock()

	rl.sweep(time.Now())

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	assert.NotContains(t, rl.buckets, "idle")
	assert.Contains(t, rl.buckets, "active")
}

func TestAllowRefillsOverTime(t *testing.T) {
	rl := New(Config{CallsPerMinute: 60})
	defer rl.Stop()

	for i := 0; i < 60; i++ {
		require.True(t, rl.allow("k"))
	}
	require.False(t, rl.allow("k"))

	// Backdate the refill clock one minute to simulate waiting.
	rl.mu.RLock()
	b := rl.buckets["k"]
	rl.mu.RUnlock()
	b.mu.Lock()
	b.lastRefill = b.lastRefill.Add(-time.Minute)
	b.mu.Unlock()

	assert.True(t, rl.allow("k"))
}
