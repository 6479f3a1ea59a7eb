package matcher

import (
	"context"

	"jobpulse/internal/cache"
	"jobpulse/internal/llm"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"
)

// DeepAnalyzer runs the AI-backed assessment for the on-demand analysis
// flow. Results are cached by a content hash of the description and the
// candidate's skills, so repeat submissions of the same pairing are free.
type DeepAnalyzer struct {
	llm    *llm.Manager
	cache  *cache.Cache
	logger logging.Logger
}

// NewDeepAnalyzer creates a deep analyzer. cache may be nil.
func NewDeepAnalyzer(llmManager *llm.Manager, redisCache *cache.Cache) *DeepAnalyzer {
	return &DeepAnalyzer{
		llm:    llmManager,
		cache:  redisCache,
		logger: logging.GetGlobalLogger(),
	}
}

// Analyze returns the assessment and whether it was served from cache. It
// never returns an error: when the AI path fails the caller gets a
// zero-score fallback with an explanatory advice string.
func (d *DeepAnalyzer) Analyze(ctx context.Context, jobDescription string, cv *models.CandidateProfile) (*models.MatchAnalysis, bool) {
	key := cache.AnalysisKey(jobDescription, cv)

	if d.cache != nil {
		if cached := d.cache.GetAnalysis(ctx, key); cached != nil {
			return cached, true
		}
	}

	analysis, err := d.llm.AnalyzeMatch(ctx, jobDescription, cv)
	if err != nil {
		d.logger.Warn("AI match analysis failed, returning fallback result", map[string]interface{}{
			"user_id": cv.UserID,
			"error":   err.Error(),
		})
		return fallbackAnalysis(), false
	}

	if d.cache != nil {
		d.cache.CacheAnalysis(ctx, key, analysis)
	}

	return analysis, false
}

func fallbackAnalysis() *models.MatchAnalysis {
	return &models.MatchAnalysis{
		Score:         0,
		MatchReasons:  []string{},
		MissingSkills: []string{},
		Advice:        "Unable to evaluate match automatically. Please try again later.",
	}
}
