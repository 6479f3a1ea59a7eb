package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobpulse/internal/adzuna"
	"jobpulse/internal/alerts"
	"jobpulse/internal/api/routes"
	"jobpulse/internal/background"
	"jobpulse/internal/cache"
	"jobpulse/internal/config"
	"jobpulse/internal/extractor"
	"jobpulse/internal/jobs"
	"jobpulse/internal/llm"
	"jobpulse/internal/logging"
	"jobpulse/internal/matcher"
	"jobpulse/internal/notify"
	"jobpulse/internal/store"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	logger, err := logging.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Info("Starting JobPulse")

	ctx := context.Background()

	// Redis cache is optional: the pipeline runs fail-open without it
	redisCache := cache.New(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("Redis unreachable, running without shared cache", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Postgres is required for profiles, saved jobs and alerts
	db, err := store.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer db.Close()

	// Initialize LLM manager
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Background task manager for fire-and-forget cache warms
	taskManager := background.NewManager(cfg)

	// Process-local job cache in front of Redis
	memCache := cache.NewMemoryJobCache(cache.JobTTL, time.Minute, time.Now)
	memCtx, memCancel := context.WithCancel(ctx)
	memCache.Start(memCtx)
	defer memCancel()

	// Wire the pipeline
	source := adzuna.NewClient(cfg)
	ext := extractor.New(llmManager, redisCache)
	jobService := jobs.NewService(source, ext, redisCache, memCache, db, taskManager)
	analyzer := matcher.NewDeepAnalyzer(llmManager, redisCache)
	notifier := notify.NewResendNotifier(cfg)
	processor := alerts.NewProcessor(cfg, db, source, ext, notifier)

	// Alert scheduler
	var scheduler *alerts.Scheduler
	if cfg.Alerts.Enabled {
		scheduler = alerts.NewScheduler(cfg, processor)
		if err := scheduler.Start(); err != nil {
			logger.Fatal("Failed to start alert scheduler", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, routes.Deps{
		Cfg:        cfg,
		JobService: jobService,
		Analyzer:   analyzer,
		Processor:  processor,
		DB:         db,
		Cache:      redisCache,
		LLM:        llmManager,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if scheduler != nil {
			logger.Info("Stopping alert scheduler...")
			scheduler.Stop()
		}

		logger.Info("Stopping background task manager...")
		taskManager.Stop()

		logger.Info("Stopping LLM manager...")
		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{
				"error": err.Error(),
			})
		}

		memCache.Stop()

		if err := redisCache.Close(); err != nil {
			logger.Error("Error closing cache", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
