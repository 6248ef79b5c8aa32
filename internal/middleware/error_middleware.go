package middleware

import (
	"errors"
	"net/http"

	"clinic-chat/internal/services"
	"clinic-chat/internal/transport/httpdto"
	clinic_errors "clinic-chat/pkg/errors"
	"clinic-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler turns the last error a handler pushed with c.Error into the
// response envelope. Internal errors are logged and answered generically.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := services.HTTPStatus(err)
		if status == http.StatusInternalServerError && l != nil {
			l.ErrorCtx(c.Request.Context(), "request failed", zap.Error(err))
		}
		c.JSON(status, httpdto.NewErrorResponse(clinic_errors.Message(err, http.StatusText(status)), errorCode(err)))
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, clinic_errors.ErrInvalidInput):
		return "INVALID_REQUEST"
	case errors.Is(err, clinic_errors.ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, clinic_errors.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, clinic_errors.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, clinic_errors.ErrConflict):
		return "CONFLICT"
	case errors.Is(err, clinic_errors.ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, clinic_errors.ErrServiceUnavailable):
		return "UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
