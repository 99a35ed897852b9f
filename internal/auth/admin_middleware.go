package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole creates a gin middleware that lets only users holding role
// through. It must be used AFTER AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			// This should not happen if AuthMiddleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		if !user.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: " + role + " required"})
			return
		}

		c.Next()
	}
}
