package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miguelmlop25/gestion-vacantes/internal/delivery/http/response"
	"github.com/miguelmlop25/gestion-vacantes/pkg/apperror"
	"github.com/miguelmlop25/gestion-vacantes/pkg/logger"
)

// ErrorHandler converts errors appended to the gin context into the standard
// JSON envelope. Domain conditions keep their kind and status; anything else
// is logged server-side and surfaced as a generic 500 so internals never
// leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindInternal {
				logger.Log.Error("internal error", "path", c.FullPath(), "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, string(appErr.Kind))
			return
		}

		logger.Log.Error("unhandled error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
