package extractor

import (
	"context"

	"jobpulse/internal/cache"
	"jobpulse/internal/llm"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"
)

// minAISkills is the point below which an AI extraction is considered too
// thin and the keyword fallback takes over.
const minAISkills = 2

// Extractor derives structured skill requirements from listings, preferring
// the AI path and degrading to the keyword scan when it fails or comes back
// near empty.
type Extractor struct {
	llm    *llm.Manager
	cache  *cache.Cache
	logger logging.Logger
}

// New creates an extractor. cache may be nil, which disables the cached path.
func New(llmManager *llm.Manager, redisCache *cache.Cache) *Extractor {
	return &Extractor{
		llm:    llmManager,
		cache:  redisCache,
		logger: logging.GetGlobalLogger(),
	}
}

// ExtractJobSkills returns the requirement set for a listing. It never fails;
// when the AI path is unavailable the keyword fallback result is returned.
func (e *Extractor) ExtractJobSkills(ctx context.Context, title, description string) *models.ExtractedJobSkills {
	if e.llm != nil && e.llm.IsHealthy() {
		skills, err := e.llm.ExtractSkills(ctx, title, description)
		if err == nil && len(skills.RequiredSkills) >= minAISkills {
			return skills
		}
		if err != nil {
			e.logger.Warn("AI skill extraction failed, using keyword fallback", map[string]interface{}{
				"job_title": title,
				"error":     err.Error(),
			})
		} else {
			e.logger.Debug("AI skill extraction too sparse, using keyword fallback", map[string]interface{}{
				"job_title":    title,
				"skills_found": len(skills.RequiredSkills),
			})
		}
	}

	return FallbackExtract(title, description)
}

// ExtractJobSkillsCached consults the skills cache before extracting and
// writes fresh results back. jobID keys the cache entry.
func (e *Extractor) ExtractJobSkillsCached(ctx context.Context, jobID, title, description string) *models.ExtractedJobSkills {
	if e.cache != nil {
		if cached := e.cache.GetCachedSkills(ctx, jobID); cached != nil {
			return cached
		}
	}

	skills := e.ExtractJobSkills(ctx, title, description)

	if e.cache != nil {
		e.cache.CacheSkills(ctx, jobID, skills)
	}

	return skills
}
