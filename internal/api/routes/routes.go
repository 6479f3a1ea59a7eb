package routes

import (
	"time"

	"jobpulse/internal/alerts"
	"jobpulse/internal/api/handlers"
	"jobpulse/internal/api/middleware"
	"jobpulse/internal/cache"
	"jobpulse/internal/config"
	"jobpulse/internal/jobs"
	"jobpulse/internal/llm"
	"jobpulse/internal/matcher"
	"jobpulse/internal/store"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Cfg        *config.Config
	JobService *jobs.Service
	Analyzer   *matcher.DeepAnalyzer
	Processor  *alerts.Processor
	DB         *store.Store
	Cache      *cache.Cache
	LLM        *llm.Manager
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, deps Deps) {
	e.HTTPErrorHandler = middleware.ErrorHandler()

	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig(deps.Cfg))
	e.Use(middleware.RequestValidation())
	// Selective timeout: the AI-backed analyze path gets 2 minutes, the rest the server default
	e.Use(middleware.SelectiveTimeoutConfig(deps.Cfg.Server.ReadTimeout, 2*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Cache, deps.DB, deps.LLM))
		health.GET("/live", handlers.LivenessHandler)
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		jobsGroup := v1.Group("/jobs")
		{
			jobsGroup.GET("/search", handlers.SearchJobsHandler(deps.JobService))
			jobsGroup.POST("/search", handlers.SearchJobsHandler(deps.JobService))
			jobsGroup.GET("/categories", handlers.CategoriesHandler(deps.JobService))
			jobsGroup.GET("/:id", handlers.JobDetailsHandler(deps.JobService))
		}

		saved := v1.Group("/saved-jobs")
		{
			saved.GET("", handlers.ListSavedJobsHandler(deps.DB))
			saved.POST("", handlers.SaveJobHandler(deps.DB))
			saved.DELETE("", handlers.DeleteSavedJobHandler(deps.DB))
		}

		alertsGroup := v1.Group("/alerts")
		{
			alertsGroup.GET("", handlers.GetAlertHandler(deps.DB))
			alertsGroup.POST("", handlers.UpsertAlertHandler(deps.DB))
			alertsGroup.DELETE("", handlers.DeleteAlertHandler(deps.DB))
		}

		analyzeLimiter := middleware.NewRateLimiter(deps.Cfg.RateLimit.AnalyzeRequests, deps.Cfg.RateLimit.AnalyzeWindow)
		v1.POST("/match/analyze", handlers.AnalyzeMatchHandler(deps.Analyzer), analyzeLimiter.Middleware())

		v1.POST("/cron/alerts", handlers.CronAlertsHandler(deps.Cfg, deps.Processor))
	}
}
