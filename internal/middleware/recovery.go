package middleware

import (
	"log"
	"net/http"

	"taskhub/backend/internal/response"

	"github.com/gin-gonic/gin"
)

// RecoveryWithLog converts panics into the standard 500 envelope.
func RecoveryWithLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Envelope{
					Success: false,
					Message: "an unexpected error occurred",
				})
			}
		}()
		c.Next()
	}
}
