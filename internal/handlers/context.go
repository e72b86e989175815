package handlers

import (
	"strconv"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the identity the auth middleware attached. With
// optional auth it returns 0 for anonymous callers.
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get(middleware.ContextUserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// pathID parses the :id route parameter as a positive integer.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, apperrors.NewValidation([]apperrors.FieldError{
			{Field: name, Message: name + " must be a positive integer"},
		})
	}
	return uint(n), nil
}
