package middleware

import (
	"math"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/ratelimit"
	"taskhub/backend/internal/response"

	"github.com/gin-gonic/gin"
)

// RateLimit gates requests per client address through the injected limiter.
// Limiter errors fail open: abuse mitigation never takes the API down.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Next()
			return
		}
		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			response.AbortError(c, apperrors.NewRateLimited(retryAfter))
			return
		}
		c.Next()
	}
}
