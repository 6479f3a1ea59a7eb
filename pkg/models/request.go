package models

// SearchJobsRequest holds the search parameters accepted by the job search
// endpoints. All filters are optional; a blank keyword falls back to a
// generic term in the adapter.
type SearchJobsRequest struct {
	Keyword        string  `json:"keyword" query:"keyword"`
	Location       string  `json:"location" query:"location"`
	IsRemote       bool    `json:"is_remote" query:"is_remote"`
	CountryCode    string  `json:"country_code" query:"country_code"`
	Page           int     `json:"page" query:"page" validate:"omitempty,min=1"`
	ResultsPerPage int     `json:"results_per_page" query:"results_per_page" validate:"omitempty,min=1,max=50"`
	MaxDays        int     `json:"max_days" query:"max_days" validate:"omitempty,min=1"`
	SalaryMin      float64 `json:"salary_min" query:"salary_min"`
	SalaryMax      float64 `json:"salary_max" query:"salary_max"`
	FullTime       bool    `json:"full_time" query:"full_time"`
	PartTime       bool    `json:"part_time" query:"part_time"`
	Contract       bool    `json:"contract" query:"contract"`
	Permanent      bool    `json:"permanent" query:"permanent"`
	Category       string  `json:"category" query:"category"`
	CompanyName    string  `json:"company_name" query:"company_name"`
	UserID         string  `json:"user_id" query:"user_id"`
}

// SaveJobRequest saves a listing to the user's list.
type SaveJobRequest struct {
	UserID     string         `json:"user_id" validate:"required"`
	Job        *NormalizedJob `json:"job" validate:"required"`
	MatchScore *int           `json:"match_score,omitempty"`
}

// DeleteSavedJobRequest removes a listing from the user's list.
type DeleteSavedJobRequest struct {
	UserID string `json:"user_id" validate:"required"`
	JobID  string `json:"job_id" validate:"required"`
}

// UpsertAlertRequest creates or replaces the user's job alert.
type UpsertAlertRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	JobTitle      string `json:"job_title" validate:"required"`
	Location      string `json:"location"`
	IsRemote      bool   `json:"is_remote"`
	Frequency     string `json:"frequency" validate:"required,oneof=daily weekly Daily Weekly"`
	MinMatchScore int    `json:"min_match_score" validate:"omitempty,min=0,max=100"`
	Email         string `json:"email" validate:"required,email"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

// AnalyzeMatchRequest asks the deep-analysis scorer to evaluate a candidate
// against a job description.
type AnalyzeMatchRequest struct {
	JobDescription string            `json:"job_description" validate:"required"`
	CV             *CandidateProfile `json:"cv" validate:"required"`
}
