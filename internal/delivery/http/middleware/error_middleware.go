package middleware

import (
	"errors"
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/pkg/apperror"
	"go-jobtracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			response.Error(c, appErr.Code, appErr.Message, response.ErrorDetail{
				Kind:  string(appErr.Kind),
				Field: appErr.Field,
			})
			return
		}

		// internal details stay in the server log
		reqID, _ := c.Get(RequestIDKey)
		logger.Log.Error("Internal Server Error",
			"error", err,
			"path", c.FullPath(),
			"method", c.Request.Method,
			"request_id", reqID,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.",
			response.ErrorDetail{Kind: string(apperror.KindStorage)})
	}
}
