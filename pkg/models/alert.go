package models

import (
	"strings"
	"time"
)

// Alert cadence values. Comparison is case-insensitive since older rows
// carry capitalized values ("Daily").
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// DefaultMinMatchScore is applied when an alert is created without an
// explicit threshold.
const DefaultMinMatchScore = 70

// JobAlert is a persisted saved search that the scheduler re-runs on a
// daily or weekly cadence. At most one active alert exists per user in the
// simple flow; rows are upserted by user_id.
type JobAlert struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	JobTitle      string     `json:"job_title"`
	Location      string     `json:"location,omitempty"`
	IsRemote      bool       `json:"is_remote"`
	Frequency     string     `json:"frequency"`
	MinMatchScore int        `json:"min_match_score"`
	Email         string     `json:"email"`
	IsActive      bool       `json:"is_active"`
	LastSentAt    *time.Time `json:"last_sent_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Cadence returns the minimum interval between two notification runs, or
// false for an unknown frequency value.
func (a *JobAlert) Cadence() (time.Duration, bool) {
	switch strings.ToLower(a.Frequency) {
	case FrequencyDaily:
		return 24 * time.Hour, true
	case FrequencyWeekly:
		return 7 * 24 * time.Hour, true
	default:
		return 0, false
	}
}
