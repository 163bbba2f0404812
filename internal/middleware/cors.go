package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS lets browser clients on other origins reach the API. The service runs
// behind a gateway that scopes exposure, so the policy here stays permissive;
// the request id header is exposed so clients can quote it in bug reports.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+RequestIDKey)
		c.Header("Access-Control-Expose-Headers", RequestIDKey)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
