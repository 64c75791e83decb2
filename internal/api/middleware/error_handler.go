package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anashammo/whisper-ui/internal/api/errors"
)

// ErrorHandler recovers panics into JSON internal error responses.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString("request_id")

		logger.Error("panic recovered",
			"recovered", recovered,
			"request_id", requestID,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)

		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(http.StatusInternalServerError, &errors.APIError{
			Kind:      errors.KindInternal,
			Message:   "internal server error",
			RequestID: requestID,
		})
	})
}

// HandleError converts a domain error into the matching JSON response.
// Handlers call it for every error path.
func HandleError(c *gin.Context, logger *slog.Logger, err error) {
	if err == nil {
		return
	}

	apiErr := errors.FromError(err)
	apiErr.RequestID = c.GetString("request_id")

	if apiErr.Kind == errors.KindInternal {
		logger.Error("request failed",
			"error", err,
			"request_id", apiErr.RequestID,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
	}

	c.Header("Content-Type", "application/json")
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
