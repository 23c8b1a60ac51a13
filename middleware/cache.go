package middleware

import "github.com/gin-gonic/gin"

// NoStoreMiddleware marks responses as private and uncacheable. Todo and
// analytics answers are per user and recomputed on every request.
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
