package handlers

import (
	"net/http"

	"jobpulse/internal/api/middleware"
	"jobpulse/internal/jobs"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"
	"jobpulse/pkg/utils"

	"github.com/labstack/echo/v4"
)

// JobDetailsHandler resolves a single job by id through the cache and
// fallback chain.
func JobDetailsHandler(service *jobs.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)

		jobID := c.Param("id")
		if jobID == "" {
			return utils.NewBadRequestError("Job id is required")
		}

		userID := c.QueryParam("user_id")
		country := c.QueryParam("country_code")

		job := service.GetJobDetails(c.Request().Context(), jobID, userID, country)
		if job == nil {
			return utils.NewJobNotFoundError(jobID)
		}

		return c.JSON(http.StatusOK, models.JobDetailResponse{
			Success:   true,
			Job:       job,
			RequestID: requestID,
		})
	}
}

// CategoriesHandler returns the job source's category list.
func CategoriesHandler(service *jobs.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		logger := logging.GetGlobalLogger()

		categories, err := service.Categories(c.Request().Context(), c.QueryParam("country_code"))
		if err != nil {
			logger.Error("Category fetch failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return utils.NewUpstreamError("could not fetch job categories")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"categories": categories,
			"request_id": requestID,
		})
	}
}
