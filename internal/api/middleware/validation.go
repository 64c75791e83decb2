package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/anashammo/whisper-ui/internal/api/errors"
)

// ValidateQuery binds and validates query parameters against the struct's
// binding tags.
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			fields := make(map[string]string)
			for _, fieldError := range validationErrs {
				fields[strings.ToLower(fieldError.Field())] = "invalid query parameter"
			}
			return errors.NewValidationError("invalid query parameters", fields)
		}
		return errors.NewBadRequestError("invalid query parameters")
	}
	return nil
}
