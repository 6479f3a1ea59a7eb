package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// SelectiveTimeoutConfig applies the default timeout everywhere except the
// AI-backed paths, which get the longer one.
func SelectiveTimeoutConfig(defaultTimeout, aiTimeout time.Duration) echo.MiddlewareFunc {
	short := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: defaultTimeout})
	long := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: aiTimeout})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		shortNext := short(next)
		longNext := long(next)
		return func(c echo.Context) error {
			if strings.HasSuffix(c.Path(), "/analyze") {
				return longNext(c)
			}
			return shortNext(c)
		}
	}
}
