package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitedRouter(cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimitInMemoryFallback(t *testing.T) {
	// No Redis client is initialized in tests, so the limiter must degrade
	// to the in-memory store.
	cfg := RateLimitConfig{
		Limit:     2,
		Window:    time.Minute,
		KeyPrefix: "rl:test:fallback:",
		KeyFunc:   func(c *gin.Context) string { return "fixed" },
	}
	r := rateLimitedRouter(cfg)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitWindowReset(t *testing.T) {
	cfg := RateLimitConfig{Limit: 1, Window: 50 * time.Millisecond}
	key := "rl:test:reset:fixed"

	count, _ := checkRateLimitInMemory(key, cfg, time.Now())
	assert.Equal(t, 1, count)
	count, _ = checkRateLimitInMemory(key, cfg, time.Now())
	assert.Equal(t, 2, count)

	// A call past the window starts a fresh count.
	count, _ = checkRateLimitInMemory(key, cfg, time.Now().Add(time.Second))
	assert.Equal(t, 1, count)
}

func TestRateLimitKeysAreIndependent(t *testing.T) {
	cfg := RateLimitConfig{
		Limit:     1,
		Window:    time.Minute,
		KeyPrefix: "rl:test:keys:",
		KeyFunc:   func(c *gin.Context) string { return c.GetHeader("X-User") },
	}
	r := rateLimitedRouter(cfg)

	send := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", user)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
	assert.Equal(t, http.StatusOK, send("bob"))
}
