package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"jobpulse/internal/alerts"
	"jobpulse/internal/api/middleware"
	"jobpulse/internal/config"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"

	"github.com/labstack/echo/v4"
)

// CronAlertsHandler triggers an alert sweep over HTTP, for external cron
// services. The caller must present the shared secret as a bearer token.
func CronAlertsHandler(cfg *config.Config, processor *alerts.Processor) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		logger := logging.GetGlobalLogger()

		if cfg.Alerts.Secret == "" {
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "cron_disabled",
				Message:   "Cron trigger is not configured",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		token := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Alerts.Secret)) != 1 {
			logger.Warn("Cron trigger rejected", map[string]interface{}{
				"request_id": requestID,
				"ip":         c.RealIP(),
			})
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:     "unauthorized",
				Message:   "Invalid or missing cron secret",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		summary, err := processor.ProcessAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "sweep_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"summary":    summary,
			"request_id": requestID,
		})
	}
}
