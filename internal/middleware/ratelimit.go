package middleware

import (
	"net/http"

	"moviedeck/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a global token-bucket limit to the API.
func RateLimit(limit float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			response.AbortError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
