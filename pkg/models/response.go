package models

import "time"

// SearchJobsResponse is the structured envelope returned by the search
// endpoints. Error is populated instead of failing the request when the
// upstream source is unavailable.
type SearchJobsResponse struct {
	Success        bool            `json:"success"`
	Jobs           []NormalizedJob `json:"jobs"`
	Total          int             `json:"total"`
	Page           int             `json:"page"`
	ResultsPerPage int             `json:"results_per_page"`
	Error          string          `json:"error,omitempty"`
	RequestID      string          `json:"request_id"`
}

// JobDetailResponse wraps a single resolved job.
type JobDetailResponse struct {
	Success   bool           `json:"success"`
	Job       *NormalizedJob `json:"job,omitempty"`
	Message   string         `json:"message,omitempty"`
	RequestID string         `json:"request_id"`
}

// AnalyzeMatchResponse wraps a deep analysis result.
type AnalyzeMatchResponse struct {
	Success   bool           `json:"success"`
	Analysis  *MatchAnalysis `json:"analysis,omitempty"`
	Cached    bool           `json:"cached"`
	RequestID string         `json:"request_id"`
}

// AlertRunSummary reports the outcome of a scheduler pass.
type AlertRunSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Notified  int `json:"notified"`
	Failed    int `json:"failed"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error      string    `json:"error"`
	Message    string    `json:"message"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, rate-limit rejections only
	RequestID  string    `json:"request_id"`
	Timestamp  time.Time `json:"timestamp"`
}
