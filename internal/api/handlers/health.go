package handlers

import (
	"net/http"
	"time"

	"jobpulse/internal/api/middleware"
	"jobpulse/internal/cache"
	"jobpulse/internal/llm"
	"jobpulse/internal/logging"
	"jobpulse/internal/store"
	"jobpulse/pkg/models"

	"github.com/labstack/echo/v4"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logger := logging.GetGlobalLogger()
	logger.Debug("Health check requested", map[string]interface{}{"request_id": middleware.RequestID(c)})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0", // TODO: Get from build info
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service's dependencies are reachable.
// The cache being down does not fail readiness; the pipeline runs fail-open
// without it.
func ReadinessHandler(redisCache *cache.Cache, db *store.Store, llmManager *llm.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		checks := map[string]string{"api": "ok"}
		status := "ready"
		code := http.StatusOK

		if redisCache != nil {
			if err := redisCache.Ping(ctx); err != nil {
				checks["cache"] = "unreachable"
			} else {
				checks["cache"] = "ok"
			}
		}

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				checks["database"] = "unreachable"
				status = "not_ready"
				code = http.StatusServiceUnavailable
			} else {
				checks["database"] = "ok"
			}
		}

		if llmManager != nil {
			if llmManager.IsHealthy() {
				checks["llm"] = "ok"
			} else {
				checks["llm"] = "degraded"
			}
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	})
}
