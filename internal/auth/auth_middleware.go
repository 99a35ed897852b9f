package auth

import (
	"context"
	"net/http"
	"strings"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CurrentUserKey is the gin context key holding the authenticated *models.User.
const CurrentUserKey = "currentUser"

// TokenParser extracts the username from a signed token.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// UserFinder loads users by username, returning an apperror NotFound
// when the user does not exist.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthMiddleware requires a valid bearer token and stores the user it
// names under CurrentUserKey.
func AuthMiddleware(tokens TokenParser, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be 'Bearer <token>'"})
			return
		}

		username, err := tokens.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.FindByUsername(c.Request.Context(), username)
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
				return
			}
			logger.Log.Error("failed to load authenticated user", zap.String("username", username), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
