package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"jobpulse/pkg/models"
)

// GetCandidateProfile loads the scoring inputs for a user: the parsed skill
// list from their most recent CV joined with the experience level, location
// and remote preference recorded on their profile. Returns (nil, nil) when
// the user has no CV yet.
func (s *Store) GetCandidateProfile(ctx context.Context, userID string) (*models.CandidateProfile, error) {
	profile := &models.CandidateProfile{UserID: userID}

	err := s.pool.QueryRow(ctx,
		`SELECT c.skills,
		        COALESCE(p.experience_level, ''),
		        COALESCE(p.location, ''),
		        COALESCE(p.wants_remote, false)
		 FROM cvs c
		 LEFT JOIN profiles p ON p.user_id = c.user_id
		 WHERE c.user_id = $1
		 ORDER BY c.updated_at DESC
		 LIMIT 1`,
		userID,
	).Scan(&profile.Skills, &profile.Experience, &profile.Location, &profile.WantsRemote)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query candidate profile: %w", err)
	}

	return profile, nil
}
