package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/interfaces/http/dto"
)

func TestRateLimit_MemoryStore(t *testing.T) {
	limit, err := RateLimit(RateLimitConfig{Name: "auth-test", Requests: 2, Window: time.Minute})
	require.NoError(t, err)

	router := gin.New()
	router.Use(limit)
	router.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":40000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := send("192.0.2.10")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, send("192.0.2.10").Code)

	w = send("192.0.2.10")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, dto.ErrCodeRateLimited, decodeError(t, w).Code)

	// counters are per client
	assert.Equal(t, http.StatusOK, send("192.0.2.11").Code)
}

func TestNewRateLimitStore_WithoutRedis(t *testing.T) {
	store, err := NewRateLimitStore("api", nil)
	require.NoError(t, err)
	assert.NotNil(t, store)
}
