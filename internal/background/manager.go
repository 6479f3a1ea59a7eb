package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobpulse/internal/config"
	"jobpulse/internal/logging"
	"jobpulse/pkg/utils"
)

// Manager runs fire-and-forget tasks off the request path: batch cache
// warms after a search, notification dispatches, anything the response must
// not wait for. Each task gets its own timeout and error boundary; a task
// failure is logged and dropped, never surfaced to the request that
// submitted it.
type Manager struct {
	cfg     *config.Config
	logger  logging.Logger
	sem     chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

// NewManager creates a task manager bounded by MaxConcurrentTasks.
func NewManager(cfg *config.Config) *Manager {
	maxTasks := cfg.BackgroundTasks.MaxConcurrentTasks
	if maxTasks < 1 {
		maxTasks = 1
	}

	return &Manager{
		cfg:    cfg,
		logger: logging.GetGlobalLogger(),
		sem:    make(chan struct{}, maxTasks),
	}
}

// Submit schedules fn to run in the background. It returns immediately with
// the task id, or an error when the manager is stopped or saturated.
func (m *Manager) Submit(name string, fn func(ctx context.Context) error) (string, error) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return "", fmt.Errorf("task manager is stopped")
	}
	m.mu.Unlock()

	select {
	case m.sem <- struct{}{}:
	default:
		return "", fmt.Errorf("task queue is full")
	}

	taskID := utils.GenerateRequestID()
	m.wg.Add(1)

	go func() {
		defer m.wg.Done()
		defer func() { <-m.sem }()
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("Background task panicked", map[string]interface{}{
					"task_id": taskID,
					"task":    name,
					"panic":   fmt.Sprintf("%v", r),
				})
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.BackgroundTasks.TaskTimeout)
		defer cancel()

		started := time.Now()
		if err := fn(ctx); err != nil {
			m.logger.Warn("Background task failed", map[string]interface{}{
				"task_id": taskID,
				"task":    name,
				"error":   err.Error(),
			})
			return
		}

		m.logger.Debug("Background task completed", map[string]interface{}{
			"task_id":         taskID,
			"task":            name,
			"processing_time": time.Since(started).String(),
		})
	}()

	return taskID, nil
}

// Stop refuses new tasks and waits for in-flight ones, up to the task
// timeout.
func (m *Manager) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(m.cfg.BackgroundTasks.TaskTimeout):
		m.logger.Warn("Timed out waiting for background tasks to finish")
	}
}

// ActiveTasks reports how many tasks are currently running.
func (m *Manager) ActiveTasks() int {
	return len(m.sem)
}
