package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"jobpulse/internal/config"
)

// CORSConfig builds CORS middleware from the configured origin allowlist.
// An empty list means the config defaults were bypassed, so it falls back
// to the permissive wildcard rather than blocking every browser client.
func CORSConfig(cfg *config.Config) echo.MiddlewareFunc {
	origins := cfg.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	})
}
