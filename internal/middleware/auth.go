package middleware

import (
	"net/http"
	"strings"

	jwtsvc "moviedeck/internal/pkg/jwt"
	"moviedeck/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAuth validates the bearer token and stores the caller's user id in
// the context.
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.AbortError(c, http.StatusUnauthorized, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Token is invalid")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// RequireUserScope rejects requests whose :userId path segment does not
// match the authenticated user. Runs after RequireAuth.
func RequireUserScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("userId") != c.GetString("user_id") {
			response.AbortError(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}
