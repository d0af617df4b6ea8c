package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiter(t *testing.T, config *Config) *RateLimiter {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(client, config)
}

func testConfig(limit int) *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: limit,
		AuthRequests:    limit,
		BookingRequests: limit,
		AdminRequests:   limit,
	}
}

func TestRateLimiterDeniesOverLimit(t *testing.T) {
	limiter := setupLimiter(t, testConfig(2))
	ctx := context.Background()

	first, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)
}

func TestRateLimiterCountsBurstWithinSameSecond(t *testing.T) {
	// All requests land with the same score; each must still count.
	limiter := setupLimiter(t, testConfig(3))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeBooking)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
	}

	result, err := limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeBooking)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
}

func TestRateLimiterTracksClientsIndependently(t *testing.T) {
	limiter := setupLimiter(t, testConfig(1))
	ctx := context.Background()

	first, err := limiter.IsAllowed(ctx, "10.0.0.3", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	blocked, err := limiter.IsAllowed(ctx, "10.0.0.3", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	other, err := limiter.IsAllowed(ctx, "10.0.0.4", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestRateLimiterWhitelistBypass(t *testing.T) {
	config := testConfig(1)
	config.WhitelistedIPs = []string{"127.0.0.1"}
	limiter := setupLimiter(t, config)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := limiter.IsAllowed(ctx, "127.0.0.1", RateLimitTypeDefault)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	config := testConfig(1)
	config.Enabled = false
	limiter := setupLimiter(t, config)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.5", RateLimitTypeDefault)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestMiddlewareRespondsTooManyRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := setupLimiter(t, testConfig(2))

	engine := gin.New()
	engine.Use(Middleware(limiter))
	engine.GET("/seats", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/seats", nil)
		req.RemoteAddr = "10.0.0.6:52100"
		engine.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}
