package middleware

import (
	"crypto/subtle"
	"net/http"

	"coachly/config"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the schedule-administration endpoints with a
// static API key. Full operator authentication lives in a separate service;
// this surface only needs to keep the public internet out.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.AppConfig.AdminAPIKey
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin API is not configured"})
			return
		}
		provided := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
			return
		}
		c.Next()
	}
}
