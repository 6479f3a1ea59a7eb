package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"jobpulse/internal/config"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"
	"jobpulse/pkg/utils"
)

// Cache entry lifetimes. Single-job entries are short-lived because they are
// written from detail-page lookups; batch entries pre-warm detail pages after
// a search and live as long as extracted skills and scores.
const (
	JobTTL      = 1 * time.Hour
	JobBatchTTL = 7 * 24 * time.Hour
	ScoreTTL    = 7 * 24 * time.Hour
	SkillsTTL   = 7 * 24 * time.Hour
	AnalysisTTL = 1 * time.Hour
)

// Cache wraps the Redis client behind a fail-open policy: every operation
// that cannot reach the backend logs and reports a miss instead of failing
// the caller, so the scoring and fetch pipeline stays available when Redis
// is down or unconfigured.
type Cache struct {
	client *redis.Client
	logger logging.Logger
}

// New creates the cache backed by the configured Redis instance. A client is
// always returned; connectivity problems surface as misses later, never as a
// construction error.
func New(cfg *config.Config) *Cache {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
	}

	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &Cache{
		client: redis.NewClient(opts),
		logger: logging.GetGlobalLogger(),
	}
}

// Ping tests the Redis connection
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

func jobKey(jobID string) string {
	return fmt.Sprintf("job:%s", jobID)
}

func scoreKey(userID, jobID string) string {
	return fmt.Sprintf("match_score:%s:%s", userID, jobID)
}

func skillsKey(jobID string) string {
	return fmt.Sprintf("job_skills:%s", jobID)
}

func categoriesKey(countryCode string) string {
	return fmt.Sprintf("adzuna:categories:%s", countryCode)
}

// CacheJob stores a single normalized job from a detail-page lookup.
func (c *Cache) CacheJob(ctx context.Context, job *models.NormalizedJob) {
	if job == nil || job.ID == "" {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		c.logger.Error("Failed to marshal job for cache", map[string]interface{}{
			"job_id": job.ID,
			"error":  err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, jobKey(job.ID), payload, JobTTL).Err(); err != nil {
		c.logger.Warn("Job cache write failed", map[string]interface{}{
			"job_id": job.ID,
			"error":  err.Error(),
		})
	}
}

// GetCachedJob resolves a job by id. Corrupt entries (unparsable JSON) are
// deleted on read and reported as a miss so the caller recomputes.
func (c *Cache) GetCachedJob(ctx context.Context, jobID string) *models.NormalizedJob {
	raw, err := c.client.Get(ctx, jobKey(jobID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Job cache read failed", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
		}
		return nil
	}

	var job models.NormalizedJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		c.logger.Warn("Corrupt job cache entry, deleting", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
		c.deleteQuietly(ctx, jobKey(jobID))
		return nil
	}

	return &job
}

// CacheJobsBatch writes a search result page through a single pipeline to
// pre-warm detail-page lookups.
func (c *Cache) CacheJobsBatch(ctx context.Context, jobs []models.NormalizedJob) {
	if len(jobs) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	queued := 0
	for i := range jobs {
		job := &jobs[i]
		if job.ID == "" {
			continue
		}

		payload, err := json.Marshal(job)
		if err != nil {
			continue
		}
		pipe.Set(ctx, jobKey(job.ID), payload, JobBatchTTL)
		queued++
	}

	if queued == 0 {
		return
	}

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("Batch job cache write failed", map[string]interface{}{
			"jobs":  queued,
			"error": err.Error(),
		})
	}
}

// CacheScoresBatch writes per-user-per-job scores through a pipeline.
// Out-of-range scores are skipped rather than clamped: a value outside 0-100
// means a caller bug, and caching it would poison reads for a week.
func (c *Cache) CacheScoresBatch(ctx context.Context, userID string, scores []models.JobScore) {
	if userID == "" || len(scores) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	queued := 0
	for _, s := range scores {
		if s.JobID == "" || s.Score < 0 || s.Score > 100 {
			continue
		}
		pipe.Set(ctx, scoreKey(userID, s.JobID), strconv.Itoa(s.Score), ScoreTTL)
		queued++
	}

	if queued == 0 {
		return
	}

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("Batch score cache write failed", map[string]interface{}{
			"user_id": userID,
			"scores":  queued,
			"error":   err.Error(),
		})
	}
}

// GetCachedScore returns the cached score for a (user, job) pair, or nil on
// a miss. A stored value that is not an integer is deleted and treated as a
// miss.
func (c *Cache) GetCachedScore(ctx context.Context, userID, jobID string) *int {
	key := scoreKey(userID, jobID)

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Score cache read failed", map[string]interface{}{
				"user_id": userID,
				"job_id":  jobID,
				"error":   err.Error(),
			})
		}
		return nil
	}

	score, err := strconv.Atoi(raw)
	if err != nil {
		c.logger.Warn("Corrupt score cache entry, deleting", map[string]interface{}{
			"user_id": userID,
			"job_id":  jobID,
			"value":   raw,
		})
		c.deleteQuietly(ctx, key)
		return nil
	}

	return &score
}

// CacheSkills stores an extracted skill set for a job id.
func (c *Cache) CacheSkills(ctx context.Context, jobID string, skills *models.ExtractedJobSkills) {
	if jobID == "" || skills == nil {
		return
	}

	payload, err := json.Marshal(skills)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, skillsKey(jobID), payload, SkillsTTL).Err(); err != nil {
		c.logger.Warn("Skills cache write failed", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
	}
}

// GetCachedSkills returns a cached extracted skill set. A payload that is
// not shaped like ExtractedJobSkills (missing the skills array) is treated
// as corrupt: deleted, and reported as a miss so the caller recomputes.
func (c *Cache) GetCachedSkills(ctx context.Context, jobID string) *models.ExtractedJobSkills {
	key := skillsKey(jobID)

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Skills cache read failed", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
		}
		return nil
	}

	var skills models.ExtractedJobSkills
	if err := json.Unmarshal([]byte(raw), &skills); err != nil || skills.RequiredSkills == nil {
		c.logger.Warn("Corrupt skills cache entry, deleting", map[string]interface{}{
			"job_id": jobID,
		})
		c.deleteQuietly(ctx, key)
		return nil
	}

	return &skills
}

// GetAnalysis returns a cached deep-analysis result keyed by content hash.
func (c *Cache) GetAnalysis(ctx context.Context, key string) *models.MatchAnalysis {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Analysis cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil
	}

	var analysis models.MatchAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		c.deleteQuietly(ctx, key)
		return nil
	}

	return &analysis
}

// CacheAnalysis stores a deep-analysis result for an hour.
func (c *Cache) CacheAnalysis(ctx context.Context, key string, analysis *models.MatchAnalysis) {
	if analysis == nil {
		return
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, payload, AnalysisTTL).Err(); err != nil {
		c.logger.Warn("Analysis cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// CacheCategories stores the Adzuna category list for a country for a day.
func (c *Cache) CacheCategories(ctx context.Context, countryCode string, categories []models.JobCategory) {
	payload, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, categoriesKey(countryCode), payload, 24*time.Hour).Err(); err != nil {
		c.logger.Warn("Category cache write failed", map[string]interface{}{
			"country": countryCode,
			"error":   err.Error(),
		})
	}
}

// GetCachedCategories returns the cached category list, or nil on miss.
func (c *Cache) GetCachedCategories(ctx context.Context, countryCode string) []models.JobCategory {
	raw, err := c.client.Get(ctx, categoriesKey(countryCode)).Result()
	if err != nil {
		return nil
	}

	var categories []models.JobCategory
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		c.deleteQuietly(ctx, categoriesKey(countryCode))
		return nil
	}

	return categories
}

func (c *Cache) deleteQuietly(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Cache delete failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// AnalysisKey derives a stable cache key from the normalized job description
// and the normalized candidate skill set, so identical analyses collapse to
// one LLM call regardless of who asks.
func AnalysisKey(jobDescription string, cv *models.CandidateProfile) string {
	normalizedSkills := make([]string, 0, len(cv.Skills))
	for _, s := range cv.Skills {
		if t := utils.NormalizeTerm(s); t != "" {
			normalizedSkills = append(normalizedSkills, t)
		}
	}
	sort.Strings(normalizedSkills)

	payload, _ := json.Marshal(map[string]interface{}{
		"job":        utils.NormalizeTerm(jobDescription),
		"skills":     normalizedSkills,
		"experience": utils.NormalizeTerm(cv.Experience),
	})

	sum := sha256.Sum256(payload)
	return "job-analysis:" + hex.EncodeToString(sum[:])
}
