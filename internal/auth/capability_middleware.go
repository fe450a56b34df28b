package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireCapability creates a gin middleware that checks the caller's role.
// It must be used AFTER AuthMiddleware.
func RequireCapability(capability Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, exists := CallerFrom(c)
		if !exists {
			// This should not happen if AuthMiddleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		if !caller.Can(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
