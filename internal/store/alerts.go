package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"jobpulse/pkg/models"
)

const alertColumns = `id, user_id, job_title, COALESCE(location, ''), is_remote,
	frequency, min_match_score, email, is_active, last_sent_at, created_at, updated_at`

func scanAlert(row pgx.Row) (*models.JobAlert, error) {
	var a models.JobAlert
	err := row.Scan(
		&a.ID, &a.UserID, &a.JobTitle, &a.Location, &a.IsRemote,
		&a.Frequency, &a.MinMatchScore, &a.Email, &a.IsActive,
		&a.LastSentAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListActiveAlerts returns every active alert, for the scheduler sweep.
func (s *Store) ListActiveAlerts(ctx context.Context) ([]models.JobAlert, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+alertColumns+` FROM job_alerts WHERE is_active = true ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("query active alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.JobAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

// GetAlertByUser returns the user's alert, or (nil, nil) when none exists.
func (s *Store) GetAlertByUser(ctx context.Context, userID string) (*models.JobAlert, error) {
	a, err := scanAlert(s.pool.QueryRow(ctx,
		`SELECT `+alertColumns+` FROM job_alerts WHERE user_id = $1`, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query alert: %w", err)
	}
	return a, nil
}

// UpsertAlert creates or replaces the user's alert. One alert per user;
// frequency is stored lowercased so cadence checks stay uniform.
func (s *Store) UpsertAlert(ctx context.Context, alert *models.JobAlert) (*models.JobAlert, error) {
	if alert.MinMatchScore <= 0 {
		alert.MinMatchScore = models.DefaultMinMatchScore
	}

	a, err := scanAlert(s.pool.QueryRow(ctx,
		`INSERT INTO job_alerts (user_id, job_title, location, is_remote, frequency, min_match_score, email, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		 ON CONFLICT (user_id) DO UPDATE SET
		   job_title = EXCLUDED.job_title,
		   location = EXCLUDED.location,
		   is_remote = EXCLUDED.is_remote,
		   frequency = EXCLUDED.frequency,
		   min_match_score = EXCLUDED.min_match_score,
		   email = EXCLUDED.email,
		   is_active = true,
		   updated_at = now()
		 RETURNING `+alertColumns,
		alert.UserID, alert.JobTitle, alert.Location, alert.IsRemote,
		strings.ToLower(alert.Frequency), alert.MinMatchScore, alert.Email,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert alert: %w", err)
	}
	return a, nil
}

// DeleteAlert removes the user's alert. Deleting a missing alert is not an
// error.
func (s *Store) DeleteAlert(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM job_alerts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	return nil
}

// MarkAlertSent records a successful notification dispatch.
func (s *Store) MarkAlertSent(ctx context.Context, alertID string, sentAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE job_alerts SET last_sent_at = $2, updated_at = now() WHERE id = $1`,
		alertID, sentAt,
	)
	if err != nil {
		return fmt.Errorf("mark alert sent: %w", err)
	}
	return nil
}
