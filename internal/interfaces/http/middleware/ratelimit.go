package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"github.com/workify/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RateLimitConfig describes one limiter
type RateLimitConfig struct {
	// Name separates the counters of different limiters in a shared store
	Name     string
	Requests int
	Window   time.Duration
	// Redis shares counters between instances; nil keeps them in memory
	Redis  redis.UniversalClient
	Logger *zap.Logger
}

// NewRateLimitStore returns a Redis store for a non-nil client and an
// in-memory one otherwise
func NewRateLimitStore(name string, client redis.UniversalClient) (limiter.Store, error) {
	opts := limiter.StoreOptions{
		Prefix:          "workify:ratelimit:" + name,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	}
	if client == nil {
		return memory.NewStoreWithOptions(opts), nil
	}
	return sredis.NewStoreWithOptions(client, opts)
}

// RateLimit limits requests per client IP. The X-RateLimit-* headers are
// set on every response. Store errors let the request through.
func RateLimit(cfg RateLimitConfig) (gin.HandlerFunc, error) {
	store, err := NewRateLimitStore(cfg.Name, cfg.Redis)
	if err != nil {
		return nil, err
	}
	rate := limiter.Rate{Period: cfg.Window, Limit: int64(cfg.Requests)}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				c.GetString(RequestIDKey),
			))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			log.Error("Rate limiter store failed", zap.String("limiter", cfg.Name), zap.Error(err))
			c.Next()
		}),
	), nil
}
