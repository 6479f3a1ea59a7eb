package llm

import (
	"context"
	"fmt"
	"sync"

	"jobpulse/internal/config"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"
)

// Manager manages LLM providers and their lifecycle
type Manager struct {
	config   *config.Config
	factory  *LLMFactory
	provider LLMProvider
	logger   logging.Logger
	mu       sync.RWMutex
	healthy  bool
}

// NewManager creates a new LLM manager instance
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config:  cfg,
		factory: NewLLMFactory(cfg),
		logger:  logging.GetGlobalLogger(),
	}
}

// Start initializes the LLM manager and creates the provider
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting LLM manager", map[string]interface{}{
		"provider": m.config.LLM.Provider,
	})

	provider, err := m.factory.CreateProvider()
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	m.provider = provider

	ctx, cancel := context.WithTimeout(context.Background(), m.config.LLM.Timeout)
	defer cancel()

	if err := m.provider.IsHealthy(ctx); err != nil {
		m.logger.Warn("LLM provider health check failed, AI features will be disabled", map[string]interface{}{
			"error": err.Error(),
		})
		m.healthy = false
		// Don't return error - allow server to start without LLM
	} else {
		m.healthy = true
		m.logger.Info("LLM manager started successfully", map[string]interface{}{
			"provider": m.provider.GetProviderName(),
		})
	}

	return nil
}

// Stop shuts down the LLM manager
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping LLM manager")
	m.provider = nil
	m.healthy = false
	return nil
}

// ExtractSkills derives structured skill requirements using the configured provider
func (m *Manager) ExtractSkills(ctx context.Context, title, description string) (*models.ExtractedJobSkills, error) {
	provider, err := m.activeProvider()
	if err != nil {
		return nil, err
	}
	return provider.ExtractSkills(ctx, title, description)
}

// AnalyzeMatch runs the deep candidate-vs-job assessment using the configured provider
func (m *Manager) AnalyzeMatch(ctx context.Context, jobDescription string, cv *models.CandidateProfile) (*models.MatchAnalysis, error) {
	provider, err := m.activeProvider()
	if err != nil {
		return nil, err
	}
	return provider.AnalyzeMatch(ctx, jobDescription, cv)
}

func (m *Manager) activeProvider() (LLMProvider, error) {
	m.mu.RLock()
	provider := m.provider
	healthy := m.healthy
	m.mu.RUnlock()

	if provider == nil {
		return nil, fmt.Errorf("LLM manager not started or provider not available")
	}
	if !healthy {
		return nil, fmt.Errorf("LLM provider is not available - check API key configuration (set LLM_API_KEY environment variable)")
	}
	return provider, nil
}

// IsHealthy checks if the LLM manager and provider are healthy
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && m.provider != nil
}

// GetProviderName returns the name of the current LLM provider
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetProviderName()
	}
	return "none"
}

// CheckHealth performs a health check on the LLM provider
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return fmt.Errorf("LLM provider not available")
	}

	err := provider.IsHealthy(ctx)

	m.mu.Lock()
	m.healthy = (err == nil)
	m.mu.Unlock()

	return err
}
