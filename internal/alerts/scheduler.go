package alerts

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"jobpulse/internal/config"
	"jobpulse/internal/logging"
)

// Scheduler wraps robfig/cron and drives the periodic alert sweep.
type Scheduler struct {
	cron      *cron.Cron
	processor *Processor
	cfg       *config.Config
	logger    logging.Logger
}

// NewScheduler creates a scheduler for the configured cron spec.
func NewScheduler(cfg *config.Config, processor *Processor) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		processor: processor,
		cfg:       cfg,
		logger:    logging.GetGlobalLogger(),
	}
}

// Start registers the sweep and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Alerts.CronSpec, s.runSweep)
	if err != nil {
		return fmt.Errorf("register alert sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Alert scheduler started", map[string]interface{}{
		"spec": s.cfg.Alerts.CronSpec,
	})
	return nil
}

// Stop shuts the cron loop down and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Alert scheduler stopped")
}

// runSweep carries no sweep-wide deadline; the processor budgets each alert
// individually so one slow alert cannot starve the ones behind it.
func (s *Scheduler) runSweep() {
	if _, err := s.processor.ProcessAll(context.Background()); err != nil {
		s.logger.Error("Alert sweep failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
