package middleware

import (
	"errors"
	"net/http"

	"go-careercompass-backend/internal/delivery/http/response"
	"go-careercompass-backend/pkg/apperror"
	"go-careercompass-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors the handlers pushed onto the gin context.
// AppErrors keep their status, message and taxonomy kind; anything else is
// logged server-side and masked with a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, appErr.Kind)
			} else {
				logger.Log.Error("Unhandled error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", "")
			}
		}
	}
}
