package models

import "time"

// JobSourceAdzuna tags jobs that originate from the Adzuna search API.
const JobSourceAdzuna = "adzuna"

// LocationType classifies where the work happens.
type LocationType string

const (
	LocationRemote LocationType = "remote"
	LocationOnsite LocationType = "onsite"
	LocationHybrid LocationType = "hybrid"
)

// Salary represents the salary information attached to a listing.
// Adzuna marks estimated figures with a predicted flag.
type Salary struct {
	Min         float64 `json:"min,omitempty"`
	Max         float64 `json:"max,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	IsPredicted bool    `json:"is_predicted,omitempty"`
}

// NormalizedJob is the canonical job representation used across the pipeline.
// ID is the source-assigned listing id and is stable across fetches from the
// same source; it doubles as the cache and dedup key.
type NormalizedJob struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Location     string       `json:"location"`
	LocationType LocationType `json:"location_type"`
	Description  string       `json:"description"`
	Salary       *Salary      `json:"salary,omitempty"`
	ContractType string       `json:"contract_type,omitempty"`
	ContractTime string       `json:"contract_time,omitempty"`
	Category     string       `json:"category,omitempty"`
	PostedDate   time.Time    `json:"posted_date"`
	URL          string       `json:"url"`
	Source       string       `json:"source"`
	MatchScore   *int         `json:"match_score,omitempty"`
}

// ExtractedJobSkills is the structured requirement set derived from a job's
// title and description. RequiredSkills is deduplicated and holds non-empty
// strings only.
type ExtractedJobSkills struct {
	RequiredSkills  []string `json:"required_skills"`
	ExperienceLevel string   `json:"experience_level,omitempty"` // Junior, Mid or Senior
	Location        string   `json:"location,omitempty"`
	IsRemote        bool     `json:"is_remote"`
}

// MatchBreakdown exposes the components of a match score for explainability.
type MatchBreakdown struct {
	BaseScore       int `json:"base_score"`
	ExperienceBonus int `json:"experience_bonus"`
	LocationPenalty int `json:"location_penalty"`
}

// MatchResult is the output of the deterministic scorer.
type MatchResult struct {
	Score         int            `json:"score"`
	MatchedSkills []string       `json:"matched_skills"`
	MissingSkills []string       `json:"missing_skills"`
	Breakdown     MatchBreakdown `json:"breakdown"`
}

// CategoryScores breaks a deep analysis down by evaluation area.
type CategoryScores struct {
	TechnicalSkills int `json:"technical_skills"`
	Experience      int `json:"experience"`
	Education       int `json:"education"`
	SoftSkills      int `json:"soft_skills"`
}

// MatchAnalysis is the validated result of the AI-backed deep analysis flow.
type MatchAnalysis struct {
	Score          int             `json:"score"`
	MatchReasons   []string        `json:"match_reasons"`
	MissingSkills  []string        `json:"missing_skills"`
	Advice         string          `json:"advice"`
	CategoryScores *CategoryScores `json:"category_scores,omitempty"`
}

// JobScore pairs a job id with its computed match score for batch cache writes.
type JobScore struct {
	JobID string `json:"job_id"`
	Score int    `json:"score"`
}

// SavedJob is a job a user pinned to their list. JobData carries the full
// normalized payload so the listing survives expiry at the source.
type SavedJob struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	JobID      string         `json:"job_id"`
	JobTitle   string         `json:"job_title"`
	Company    string         `json:"company"`
	Location   string         `json:"location"`
	MatchScore *int           `json:"match_score,omitempty"`
	JobURL     string         `json:"job_url"`
	JobData    *NormalizedJob `json:"job_data,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// JobCategory is an Adzuna search category.
type JobCategory struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}
