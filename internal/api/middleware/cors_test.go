package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"jobpulse/internal/config"
)

func corsPreflight(cfg *config.Config, origin string) *httptest.ResponseRecorder {
	e := echo.New()
	handler := CORSConfig(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs/search", nil)
	req.Header.Set(echo.HeaderOrigin, origin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec
}

func TestCORSUsesConfiguredOrigins(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.AllowOrigins = []string{"https://app.example.com"}

	rec := corsPreflight(cfg, "https://app.example.com")
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "https://app.example.com" {
		t.Errorf("allow-origin = %q, want the configured origin", got)
	}

	rec = corsPreflight(cfg, "https://evil.example.com")
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Errorf("allow-origin = %q for an origin outside the allowlist", got)
	}
}

func TestCORSFallsBackToWildcard(t *testing.T) {
	cfg := &config.Config{}

	rec := corsPreflight(cfg, "https://anywhere.example.com")
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
}
