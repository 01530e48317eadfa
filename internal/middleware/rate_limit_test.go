package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter_RejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewLoginLimiter(2)
	r := gin.New()
	r.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "198.51.100.9:4000"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "limits are per client IP")
}

func TestLoginLimiter_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewLoginLimiter(5)
	limiter.now = func() time.Time { return clock }

	limiter.limiterFor("203.0.113.1")
	limiter.limiterFor("203.0.113.2")
	assert.Len(t, limiter.limiters, 2)

	clock = clock.Add(limiterIdleTTL / 2)
	limiter.limiterFor("203.0.113.2")

	clock = clock.Add(limiterIdleTTL/2 + time.Second)
	limiter.limiterFor("203.0.113.3")

	assert.Len(t, limiter.limiters, 2)
	assert.NotContains(t, limiter.limiters, "203.0.113.1")
	assert.Contains(t, limiter.limiters, "203.0.113.2")
	assert.Contains(t, limiter.limiters, "203.0.113.3")
}

func TestLoginLimiter_DisabledPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewLoginLimiter(0)
	r := gin.New()
	r.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
