package handlers

import (
	"net/http"
	"time"

	"jobpulse/internal/api/middleware"
	"jobpulse/internal/logging"
	"jobpulse/internal/matcher"
	"jobpulse/pkg/models"

	"github.com/labstack/echo/v4"
)

// AnalyzeMatchHandler runs the AI-backed deep analysis for a candidate
// against a job description. Rate limiting happens in middleware; repeated
// submissions of the same pairing are answered from cache.
func AnalyzeMatchHandler(analyzer *matcher.DeepAnalyzer) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := middleware.RequestID(c)
		logger := logging.GetGlobalLogger()

		var req models.AnalyzeMatchRequest
		if err := c.Bind(&req); err != nil {
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

		analysis, cached := analyzer.Analyze(c.Request().Context(), req.JobDescription, req.CV)

		logger.Info("Deep analysis completed", map[string]interface{}{
			"request_id":      requestID,
			"user_id":         req.CV.UserID,
			"score":           analysis.Score,
			"cached":          cached,
			"processing_time": time.Since(startTime).String(),
		})

		return c.JSON(http.StatusOK, models.AnalyzeMatchResponse{
			Success:   true,
			Analysis:  analysis,
			Cached:    cached,
			RequestID: requestID,
		})
	}
}
