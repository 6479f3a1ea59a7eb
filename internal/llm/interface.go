package llm

import (
	"context"

	"jobpulse/pkg/models"
)

// LLMProvider defines the interface for LLM providers
type LLMProvider interface {
	// ExtractSkills derives the structured requirement set from a job's
	// title and description
	ExtractSkills(ctx context.Context, title, description string) (*models.ExtractedJobSkills, error)

	// AnalyzeMatch produces a deep candidate-vs-job assessment
	AnalyzeMatch(ctx context.Context, jobDescription string, cv *models.CandidateProfile) (*models.MatchAnalysis, error)

	// IsHealthy checks if the LLM provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the LLM provider
	GetProviderName() string
}
