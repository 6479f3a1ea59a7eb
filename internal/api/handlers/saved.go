package handlers

import (
	"net/http"
	"time"

	"jobpulse/internal/api/middleware"
	"jobpulse/internal/logging"
	"jobpulse/internal/store"
	"jobpulse/pkg/models"
	"jobpulse/pkg/utils"

	"github.com/labstack/echo/v4"
)

// SaveJobHandler pins a listing to the user's saved list.
func SaveJobHandler(db *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		logger := logging.GetGlobalLogger()

		var req models.SaveJobRequest
		if err := c.Bind(&req); err != nil {
			return utils.NewBadRequestError("Invalid request format")
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		saved, err := db.SaveJob(c.Request().Context(), req.UserID, req.Job, req.MatchScore)
		if err != nil {
			logger.Error("Failed to save job", map[string]interface{}{
				"request_id": requestID,
				"user_id":    req.UserID,
				"job_id":     req.Job.ID,
				"error":      err.Error(),
			})
			return utils.NewInternalServerError("Could not save the job")
		}

		return c.JSON(http.StatusCreated, map[string]interface{}{
			"success":    true,
			"saved_job":  saved,
			"request_id": requestID,
		})
	}
}

// ListSavedJobsHandler returns the user's saved jobs, newest first.
func ListSavedJobsHandler(db *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)

		userID := c.QueryParam("user_id")
		if userID == "" {
			return utils.NewBadRequestError("user_id is required")
		}

		saved, err := db.ListSavedJobs(c.Request().Context(), userID)
		if err != nil {
			return utils.NewInternalServerError("Could not load saved jobs")
		}
		if saved == nil {
			saved = []models.SavedJob{}
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"saved_jobs": saved,
			"request_id": requestID,
		})
	}
}

// DeleteSavedJobHandler removes a listing from the user's saved list.
func DeleteSavedJobHandler(db *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)

		var req models.DeleteSavedJobRequest
		if err := c.Bind(&req); err != nil {
			return utils.NewBadRequestError("Invalid request format")
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		deleted, err := db.DeleteSavedJob(c.Request().Context(), req.UserID, req.JobID)
		if err != nil {
			return utils.NewInternalServerError("Could not delete the saved job")
		}
		if !deleted {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "not_found",
				Message:   "Saved job not found",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"request_id": requestID,
		})
	}
}
