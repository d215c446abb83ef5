package middleware

import (
	"crypto/subtle"
	"net/http"

	"inventory-app/config"

	"github.com/gin-gonic/gin"
)

// RequireAPIKey guards the external query surface. The envelope mirrors
// the endpoint's own error format so callers see one consistent shape.
func RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		// The external surface answers any origin, errors included.
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		key := c.GetHeader("X-API-Key")
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(config.QUERY_API_KEY)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "INVALID_API_KEY",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
