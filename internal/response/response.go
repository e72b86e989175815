package response

import (
	"log"
	"net/http"
	"strconv"

	"taskhub/backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    interface{}            `json:"data,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Error is the single translation point from the error taxonomy to HTTP.
// Unexpected errors are logged and rendered as a generic message unless
// gin runs in debug mode.
func Error(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternal(err)
	}

	status := appErr.HTTPStatus()
	message := appErr.Message

	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
		if gin.Mode() != gin.DebugMode {
			message = "an unexpected error occurred"
		} else if appErr.Err != nil {
			message = appErr.Err.Error()
		}
	}

	env := Envelope{Success: false, Message: message, Errors: appErr.Fields}

	if appErr.Kind == apperrors.KindRateLimited {
		c.Header("Retry-After", strconv.Itoa(appErr.RetryAfter))
		env.Data = gin.H{"retry_after": appErr.RetryAfter}
	}

	c.JSON(status, env)
}

// AbortError renders err and stops the handler chain. Middleware use.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
