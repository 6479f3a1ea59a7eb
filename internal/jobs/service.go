package jobs

import (
	"context"
	"sort"

	"jobpulse/internal/adzuna"
	"jobpulse/internal/background"
	"jobpulse/internal/cache"
	"jobpulse/internal/extractor"
	"jobpulse/internal/logging"
	"jobpulse/internal/matcher"
	"jobpulse/internal/store"
	"jobpulse/pkg/models"
)

// Service ties the fetch, extract and score pipeline together. Search never
// fails hard: upstream and cache faults degrade to partial results with the
// error carried in the response envelope.
type Service struct {
	source *adzuna.Client
	ext    *extractor.Extractor
	cache  *cache.Cache
	mem    *cache.MemoryJobCache
	db     *store.Store
	tasks  *background.Manager
	logger logging.Logger
}

// NewService wires the job pipeline. mem, db and tasks may be nil; the
// service degrades the corresponding step.
func NewService(source *adzuna.Client, ext *extractor.Extractor, redisCache *cache.Cache, mem *cache.MemoryJobCache, db *store.Store, tasks *background.Manager) *Service {
	return &Service{
		source: source,
		ext:    ext,
		cache:  redisCache,
		mem:    mem,
		db:     db,
		tasks:  tasks,
		logger: logging.GetGlobalLogger(),
	}
}

// Search fetches listings, scores them against the requesting user's profile
// when one exists, and pre-warms the caches in the background. Jobs come
// back sorted by match score, highest first, when scoring ran.
func (s *Service) Search(ctx context.Context, req *models.SearchJobsRequest) *models.SearchJobsResponse {
	result := s.source.FetchJobs(ctx, adzuna.SearchParams{
		Keyword:        req.Keyword,
		Location:       req.Location,
		IsRemote:       req.IsRemote,
		CountryCode:    req.CountryCode,
		Page:           req.Page,
		ResultsPerPage: req.ResultsPerPage,
		MaxDays:        req.MaxDays,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		FullTime:       req.FullTime,
		PartTime:       req.PartTime,
		Contract:       req.Contract,
		Permanent:      req.Permanent,
		Category:       req.Category,
		CompanyName:    req.CompanyName,
	})

	resp := &models.SearchJobsResponse{
		Success:        result.Error == "",
		Jobs:           result.Jobs,
		Total:          result.Total,
		Page:           result.Page,
		ResultsPerPage: result.ResultsPerPage,
		Error:          result.Error,
	}

	if req.UserID != "" && len(resp.Jobs) > 0 {
		s.scoreJobs(ctx, req.UserID, resp.Jobs)
	}

	if len(resp.Jobs) > 0 {
		s.warmCaches(req.UserID, resp.Jobs)
	}

	return resp
}

// scoreJobs attaches a match score to every job in place, preferring cached
// scores and sorting by score descending when the user has a usable profile.
func (s *Service) scoreJobs(ctx context.Context, userID string, jobs []models.NormalizedJob) {
	profile := s.loadProfile(ctx, userID)
	if !profile.HasSkills() {
		return
	}

	for i := range jobs {
		job := &jobs[i]

		if s.cache != nil {
			if cached := s.cache.GetCachedScore(ctx, userID, job.ID); cached != nil {
				job.MatchScore = cached
				continue
			}
		}

		skills := s.ext.ExtractJobSkillsCached(ctx, job.ID, job.Title, job.Description)
		score := matcher.Score(profile, job, skills).Score
		job.MatchScore = &score
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return derefScore(jobs[i].MatchScore) > derefScore(jobs[j].MatchScore)
	})
}

func derefScore(score *int) int {
	if score == nil {
		return -1
	}
	return *score
}

func (s *Service) loadProfile(ctx context.Context, userID string) *models.CandidateProfile {
	if s.db == nil {
		return nil
	}
	profile, err := s.db.GetCandidateProfile(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to load candidate profile, skipping scoring", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil
	}
	return profile
}

// warmCaches pushes the batch into the job and score caches off the request
// path. The response never waits on these writes and their failure never
// affects it.
func (s *Service) warmCaches(userID string, jobs []models.NormalizedJob) {
	if s.tasks == nil || s.cache == nil {
		return
	}

	batch := make([]models.NormalizedJob, len(jobs))
	copy(batch, jobs)

	if _, err := s.tasks.Submit("cache_jobs_batch", func(ctx context.Context) error {
		s.cache.CacheJobsBatch(ctx, batch)

		if userID != "" {
			scores := make([]models.JobScore, 0, len(batch))
			for _, job := range batch {
				if job.MatchScore != nil {
					scores = append(scores, models.JobScore{JobID: job.ID, Score: *job.MatchScore})
				}
			}
			if len(scores) > 0 {
				s.cache.CacheScoresBatch(ctx, userID, scores)
			}
		}
		return nil
	}); err != nil {
		s.logger.Debug("Skipped cache warm", map[string]interface{}{"error": err.Error()})
	}

	if s.mem != nil {
		for i := range batch {
			s.mem.Set(batch[i].ID, &batch[i])
		}
	}
}

// GetJobDetails resolves a single job by id, walking the lookup chain from
// cheapest to most expensive: process-local cache, shared cache, the user's
// saved copy, any user's saved copy, then a fresh fetch from the source.
// Returns nil when the listing cannot be found anywhere.
func (s *Service) GetJobDetails(ctx context.Context, jobID, userID, countryCode string) *models.NormalizedJob {
	if s.mem != nil {
		if job := s.mem.Get(jobID); job != nil {
			return s.withScore(ctx, userID, job)
		}
	}

	if s.cache != nil {
		if job := s.cache.GetCachedJob(ctx, jobID); job != nil {
			if s.mem != nil {
				s.mem.Set(jobID, job)
			}
			return s.withScore(ctx, userID, job)
		}
	}

	if s.db != nil && userID != "" {
		saved, err := s.db.GetSavedJob(ctx, userID, jobID)
		if err != nil {
			s.logger.Warn("Saved job lookup failed", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
		} else if saved != nil && saved.JobData != nil {
			s.repopulate(ctx, saved.JobData)
			return s.withScore(ctx, userID, saved.JobData)
		}
	}

	if s.db != nil {
		job, err := s.db.FindJobAcrossUsers(ctx, jobID)
		if err != nil {
			s.logger.Warn("Cross-user job lookup failed", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
		} else if job != nil {
			s.repopulate(ctx, job)
			return s.withScore(ctx, userID, job)
		}
	}

	job, err := s.source.FetchJobByID(ctx, jobID, countryCode)
	if err != nil {
		s.logger.Warn("Source detail fetch failed", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return nil
	}
	if job == nil {
		return nil
	}

	s.repopulate(ctx, job)
	return s.withScore(ctx, userID, job)
}

// repopulate writes a freshly resolved job back into both cache tiers.
func (s *Service) repopulate(ctx context.Context, job *models.NormalizedJob) {
	if s.cache != nil {
		s.cache.CacheJob(ctx, job)
	}
	if s.mem != nil {
		s.mem.Set(job.ID, job)
	}
}

// withScore attaches the cached match score for the requesting user, if any.
func (s *Service) withScore(ctx context.Context, userID string, job *models.NormalizedJob) *models.NormalizedJob {
	if userID == "" || job.MatchScore != nil || s.cache == nil {
		return job
	}
	if cached := s.cache.GetCachedScore(ctx, userID, job.ID); cached != nil {
		job.MatchScore = cached
	}
	return job
}

// Categories returns the source's category list, cached for a day.
func (s *Service) Categories(ctx context.Context, countryCode string) ([]models.JobCategory, error) {
	if s.cache != nil {
		if cached := s.cache.GetCachedCategories(ctx, countryCode); cached != nil {
			return cached, nil
		}
	}

	categories, err := s.source.FetchCategories(ctx, countryCode)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheCategories(ctx, countryCode, categories)
	}
	return categories, nil
}
