package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-api/services"
)

// AuthMiddleware resolves the bearer token into request identity. A missing
// or malformed token yields an anonymous request rather than a transport
// error; role enforcement happens in the service layer.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if claims, err := services.ValidateToken(token); err == nil {
				c.Set("userId", claims.UserID)
				c.Set("email", claims.Email)
				c.Set("role", claims.Role)
			}
		}

		// Correlation id ties events published by this mutation back to the
		// originating client so it can suppress its own subscription echo.
		if corr := c.GetHeader("X-Correlation-ID"); corr != "" {
			c.Set("correlationId", corr)
		}

		c.Next()
	}
}
