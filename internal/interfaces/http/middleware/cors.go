package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/workify/backend/internal/infrastructure/config"
)

// CORS handles cross-origin requests for the configured origins. An empty
// origin list rejects every cross-origin request. Preflight requests are
// answered here and never reach the router.
func CORS(cfg config.HTTPConfig) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   cfg.CORSAllowMethods,
		AllowedHeaders:   cfg.CORSAllowHeaders,
		ExposedHeaders:   []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           43200,
	})

	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		// HandlerFunc already wrote the preflight status
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
