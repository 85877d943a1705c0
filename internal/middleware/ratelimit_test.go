package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rate int, interval time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimiter(rate, interval).Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doPing(r *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	r := newLimitedRouter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doPing(r, "10.0.0.1"))
}

func TestRateLimiterTracksIPsIndependently(t *testing.T) {
	r := newLimitedRouter(1, time.Minute)

	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doPing(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.2"))
}

func TestRateLimiterRefills(t *testing.T) {
	r := newLimitedRouter(1, 10*time.Millisecond)

	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doPing(r, "10.0.0.1"))

	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doPing(r, "10.0.0.1"))
}
