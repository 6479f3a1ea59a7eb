package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"jobpulse/internal/logging"
	"jobpulse/pkg/models"
	"jobpulse/pkg/utils"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error escaping a handler as the standard
// ErrorResponse envelope, so clients never see echo's default error shape.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		requestID := RequestID(c)
		resp := models.ErrorResponse{
			Error:     "internal_error",
			Message:   "An unexpected error occurred",
			RequestID: requestID,
			Timestamp: time.Now(),
		}
		code := http.StatusInternalServerError

		var customErr *utils.CustomError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &customErr):
			code = customErr.Code
			resp.Error = http.StatusText(code)
			resp.Message = customErr.Error()
		case errors.As(err, &httpErr):
			code = httpErr.Code
			resp.Error = http.StatusText(code)
			resp.Message = fmt.Sprintf("%v", httpErr.Message)
		}

		if code >= http.StatusInternalServerError {
			logging.GetGlobalLogger().Error("Request failed", map[string]interface{}{
				"request_id": requestID,
				"path":       c.Path(),
				"error":      err.Error(),
			})
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}
