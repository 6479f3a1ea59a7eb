package handlers

import (
	"net/http"
	"strings"
	"time"

	"jobpulse/internal/api/middleware"
	"jobpulse/internal/logging"
	"jobpulse/internal/store"
	"jobpulse/pkg/models"
	"jobpulse/pkg/utils"

	"github.com/labstack/echo/v4"
)

// UpsertAlertHandler creates or replaces the user's job alert.
func UpsertAlertHandler(db *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)
		logger := logging.GetGlobalLogger()

		var req models.UpsertAlertRequest
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

		alert, err := db.UpsertAlert(c.Request().Context(), &models.JobAlert{
			UserID:        req.UserID,
			JobTitle:      req.JobTitle,
			Location:      req.Location,
			IsRemote:      req.IsRemote,
			Frequency:     strings.ToLower(req.Frequency),
			MinMatchScore: req.MinMatchScore,
			Email:         req.Email,
		})
		if err != nil {
			logger.Error("Failed to upsert alert", map[string]interface{}{
				"request_id": requestID,
				"user_id":    req.UserID,
				"error":      err.Error(),
			})
			return utils.NewInternalServerError("Could not save the alert")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"alert":      alert,
			"request_id": requestID,
		})
	}
}

// GetAlertHandler returns the user's alert, if any.
func GetAlertHandler(db *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)

		userID := c.QueryParam("user_id")
		if userID == "" {
			return utils.NewBadRequestError("user_id is required")
		}

		alert, err := db.GetAlertByUser(c.Request().Context(), userID)
		if err != nil {
			return utils.NewInternalServerError("Could not load the alert")
		}
		if alert == nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "not_found",
				Message:   "No alert configured for this user",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"alert":      alert,
			"request_id": requestID,
		})
	}
}

// DeleteAlertHandler removes the user's alert.
func DeleteAlertHandler(db *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := middleware.RequestID(c)

		userID := c.QueryParam("user_id")
		if userID == "" {
			return utils.NewBadRequestError("user_id is required")
		}

		if err := db.DeleteAlert(c.Request().Context(), userID); err != nil {
			return utils.NewInternalServerError("Could not delete the alert")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"request_id": requestID,
		})
	}
}
