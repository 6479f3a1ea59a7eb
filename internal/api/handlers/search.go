package handlers

import (
	"net/http"
	"time"

	"jobpulse/internal/api/middleware"
	"jobpulse/internal/jobs"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// SearchJobsHandler handles job search requests. Upstream faults come back
// as a 200 with success=false and the error in the envelope; search never
// hard-fails on a source outage.
func SearchJobsHandler(service *jobs.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := middleware.RequestID(c)
		logger := logging.GetGlobalLogger()

		var req models.SearchJobsRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind search request", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		response := service.Search(c.Request().Context(), &req)
		response.RequestID = requestID

		logger.Info("Search request completed", map[string]interface{}{
			"request_id":      requestID,
			"keyword":         req.Keyword,
			"user_id":         req.UserID,
			"jobs":            len(response.Jobs),
			"processing_time": time.Since(startTime).String(),
		})

		return c.JSON(http.StatusOK, response)
	}
}
