package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"jobpulse/pkg/models"
)

// SaveJob pins a job to the user's list, storing the full normalized payload
// as jsonb so the listing survives expiry at the source. Saving the same job
// twice refreshes the stored payload.
func (s *Store) SaveJob(ctx context.Context, userID string, job *models.NormalizedJob, matchScore *int) (*models.SavedJob, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	saved := &models.SavedJob{
		UserID:     userID,
		JobID:      job.ID,
		JobTitle:   job.Title,
		Company:    job.Company,
		Location:   job.Location,
		MatchScore: matchScore,
		JobURL:     job.URL,
		JobData:    job,
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO saved_jobs (user_id, job_id, job_title, company, location, match_score, job_url, job_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)
		 ON CONFLICT (user_id, job_id) DO UPDATE SET
		   job_title = EXCLUDED.job_title,
		   company = EXCLUDED.company,
		   location = EXCLUDED.location,
		   match_score = EXCLUDED.match_score,
		   job_url = EXCLUDED.job_url,
		   job_data = EXCLUDED.job_data
		 RETURNING id, created_at`,
		userID, job.ID, job.Title, job.Company, job.Location, matchScore, job.URL, string(payload),
	).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert saved job: %w", err)
	}

	return saved, nil
}

// GetSavedJob returns the user's saved copy of a job, or (nil, nil) when the
// user never saved it.
func (s *Store) GetSavedJob(ctx context.Context, userID, jobID string) (*models.SavedJob, error) {
	var saved models.SavedJob
	var payload []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, job_id, job_title, company, COALESCE(location, ''), match_score, COALESCE(job_url, ''), job_data, created_at
		 FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	).Scan(&saved.ID, &saved.UserID, &saved.JobID, &saved.JobTitle, &saved.Company,
		&saved.Location, &saved.MatchScore, &saved.JobURL, &payload, &saved.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query saved job: %w", err)
	}

	if len(payload) > 0 {
		var job models.NormalizedJob
		if err := json.Unmarshal(payload, &job); err == nil {
			saved.JobData = &job
		}
	}

	return &saved, nil
}

// ListSavedJobs returns the user's saved jobs, newest first.
func (s *Store) ListSavedJobs(ctx context.Context, userID string) ([]models.SavedJob, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, job_id, job_title, company, COALESCE(location, ''), match_score, COALESCE(job_url, ''), job_data, created_at
		 FROM saved_jobs WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query saved jobs: %w", err)
	}
	defer rows.Close()

	var saved []models.SavedJob
	for rows.Next() {
		var sj models.SavedJob
		var payload []byte
		if err := rows.Scan(&sj.ID, &sj.UserID, &sj.JobID, &sj.JobTitle, &sj.Company,
			&sj.Location, &sj.MatchScore, &sj.JobURL, &payload, &sj.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saved job: %w", err)
		}
		if len(payload) > 0 {
			var job models.NormalizedJob
			if err := json.Unmarshal(payload, &job); err == nil {
				sj.JobData = &job
			}
		}
		saved = append(saved, sj)
	}
	return saved, rows.Err()
}

// DeleteSavedJob removes a job from the user's list. Returns false when
// nothing was deleted.
func (s *Store) DeleteSavedJob(ctx context.Context, userID, jobID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	if err != nil {
		return false, fmt.Errorf("delete saved job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindJobAcrossUsers looks up a job payload saved by any user. Only the
// stored job_data is read; nothing user-specific leaks to the caller. Used
// as a detail-page fallback when the listing has expired at the source.
func (s *Store) FindJobAcrossUsers(ctx context.Context, jobID string) (*models.NormalizedJob, error) {
	var payload []byte

	err := s.pool.QueryRow(ctx,
		`SELECT job_data FROM saved_jobs WHERE job_id = $1 AND job_data IS NOT NULL
		 ORDER BY created_at DESC LIMIT 1`,
		jobID,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query job across users: %w", err)
	}

	var job models.NormalizedJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, nil
	}
	return &job, nil
}
