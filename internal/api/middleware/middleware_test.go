// Package middleware_test provides behavior tests for the API middleware package.
package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/hydrazone/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ============================================================================
// SlogRequestLogger Middleware Tests
// ============================================================================

func TestSlogRequestLogger_NilLogger(t *testing.T) {
	router := gin.New()
	router.Use(middleware.SlogRequestLogger(nil))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSlogRequestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router := gin.New()
	router.Use(middleware.SlogRequestLogger(logger))
	router.PATCH("/zones/:zone", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/zones/example.com.", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "method=PATCH")
	assert.Contains(t, out, "path=/zones/example.com.")
	assert.Contains(t, out, "status=204")
}

func TestSlogRequestLogger_ServerErrorsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router := gin.New()
	router.Use(middleware.SlogRequestLogger(logger))
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Contains(t, buf.String(), "level=ERROR")
}

// ============================================================================
// RateLimit Middleware Tests
// ============================================================================

func rateLimitedRouter(rl *middleware.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RateLimit(rl))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func requestFrom(router http.Handler, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.RateLimitSettings{RequestsPerMinute: 60, Burst: 3})
	router := rateLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, requestFrom(router, "192.0.2.1:1234").Code, "request %d", i)
	}

	w := requestFrom(router, "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Rate limit exceeded"}`, w.Body.String())
}

func TestRateLimit_PerClient(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.RateLimitSettings{RequestsPerMinute: 60, Burst: 1})
	router := rateLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, requestFrom(router, "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, requestFrom(router, "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusOK, requestFrom(router, "192.0.2.2:1234").Code, "other clients have their own bucket")
	assert.Equal(t, 2, rl.Clients())
}

func TestRateLimit_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.RateLimitSettings{})
	router := rateLimitedRouter(rl)

	for i := 0; i < 100; i++ {
		require.Equal(t, http.StatusOK, requestFrom(router, "192.0.2.1:1234").Code)
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.RateLimitSettings{RequestsPerMinute: 6000, Burst: 1, IdleTimeout: time.Minute})

	ok, _ := rl.Allow("client")
	require.True(t, ok)
	ok, wait := rl.Allow("client")
	require.False(t, ok)
	assert.Positive(t, wait)

	time.Sleep(wait + 5*time.Millisecond)
	ok, _ = rl.Allow("client")
	assert.True(t, ok)
}

func TestRateLimiter_Nil(t *testing.T) {
	var rl *middleware.RateLimiter
	ok, _ := rl.Allow("client")
	assert.True(t, ok)
}

// ============================================================================
// Middleware Chain Tests
// ============================================================================

func TestMiddlewareChain(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.RateLimitSettings{RequestsPerMinute: 60})
	router := gin.New()
	router.Use(middleware.SlogRequestLogger(nil))
	router.Use(middleware.RateLimit(rl))
	router.Use(middleware.RequireAPIKey("chain-key"))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer chain-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
