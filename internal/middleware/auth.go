package middleware

import (
	"errors"
	"strings"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/response"
	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "current_user"
)

// RequireAuth resolves the bearer token to a user and attaches the identity
// to the request context. Any failure rejects the request with 401.
func RequireAuth(db *gorm.DB, authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, db, authService)
		if err != nil {
			response.AbortError(c, err)
			return
		}
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user.Summary())
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// silently continues anonymously otherwise.
func OptionalAuth(db *gorm.DB, authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolveUser(c, db, authService); err == nil {
			c.Set(ContextUserIDKey, user.ID)
			c.Set(ContextUserKey, user.Summary())
		}
		c.Next()
	}
}

func resolveUser(c *gin.Context, db *gorm.DB, authService services.AuthService) (*models.User, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.NewAuthentication("authentication required")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, apperrors.NewAuthentication("authorization header must use a Bearer token")
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	userID, err := authService.ParseToken(tokenStr)
	if err != nil {
		return nil, apperrors.NewAuthentication("invalid or expired token")
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAuthentication("user not found")
		}
		return nil, apperrors.NewInternal(err)
	}
	return &user, nil
}
