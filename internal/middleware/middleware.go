package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoCache disables client-side caching for responses that must always be
// fresh (profile reads, uploaded files).
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
