package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func rateLimitedHandler(rl *RateLimiter) (*echo.Echo, echo.HandlerFunc) {
	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e, handler
}

func doRequest(e *echo.Echo, handler echo.HandlerFunc, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	e, handler := rateLimitedHandler(rl)

	for i := 0; i < 5; i++ {
		rec := doRequest(e, handler, "10.0.0.1")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestRateLimiterRejectsOverBudget(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	e, handler := rateLimitedHandler(rl)

	doRequest(e, handler, "10.0.0.2")
	doRequest(e, handler, "10.0.0.2")
	rec := doRequest(e, handler, "10.0.0.2")

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After header")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	e, handler := rateLimitedHandler(rl)

	doRequest(e, handler, "10.0.0.3")
	rec := doRequest(e, handler, "10.0.0.4")

	if rec.Code != http.StatusOK {
		t.Fatalf("second client status = %d, want 200", rec.Code)
	}
}
