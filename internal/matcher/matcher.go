package matcher

import (
	"math"
	"strings"

	"jobpulse/pkg/models"
	"jobpulse/pkg/utils"
)

const (
	// NeutralScore is returned when a listing states no requirements at
	// all, so there is nothing to match against.
	NeutralScore = 50

	experienceBonus      = 10
	onsitePenalty        = 25
	hybridPenalty        = 10
	locationMismatchCost = 10
)

// Score computes the deterministic match between a candidate and a listing.
// The result is always in [0, 100] and the same inputs always produce the
// same score. No AI call happens here.
func Score(cv *models.CandidateProfile, job *models.NormalizedJob, jobSkills *models.ExtractedJobSkills) *models.MatchResult {
	result := &models.MatchResult{
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}

	if jobSkills == nil || len(jobSkills.RequiredSkills) == 0 {
		result.Score = NeutralScore
		result.Breakdown.BaseScore = NeutralScore
		return result
	}

	for _, required := range jobSkills.RequiredSkills {
		if candidateHasSkill(cv.Skills, required) {
			result.MatchedSkills = append(result.MatchedSkills, required)
		} else {
			result.MissingSkills = append(result.MissingSkills, required)
		}
	}

	// Base stays a float until the final rounding so 2/3 scores 67, not 66.
	base := float64(len(result.MatchedSkills)) / float64(len(jobSkills.RequiredSkills)) * 100

	bonus := 0
	if cv.Experience != "" && strings.EqualFold(cv.Experience, jobSkills.ExperienceLevel) {
		bonus = experienceBonus
	}

	penalty := locationPenalty(cv, job)

	result.Breakdown = models.MatchBreakdown{
		BaseScore:       int(math.Round(base)),
		ExperienceBonus: bonus,
		LocationPenalty: penalty,
	}
	result.Score = utils.ClampScore(int(math.Round(base + float64(bonus) - float64(penalty))))

	return result
}

// candidateHasSkill matches by case-insensitive substring containment in
// either direction, so "React" covers "React.js" and vice versa.
func candidateHasSkill(candidateSkills []string, required string) bool {
	for _, have := range candidateSkills {
		if have == "" {
			continue
		}
		if utils.HasSubstringFold(have, required) || utils.HasSubstringFold(required, have) {
			return true
		}
	}
	return false
}

// locationPenalty prices in the gap between where the candidate wants to
// work and where the job happens.
func locationPenalty(cv *models.CandidateProfile, job *models.NormalizedJob) int {
	if job == nil {
		return 0
	}

	if cv.WantsRemote {
		switch job.LocationType {
		case models.LocationRemote:
			return 0
		case models.LocationHybrid:
			return hybridPenalty
		default:
			return onsitePenalty
		}
	}

	if job.LocationType == models.LocationRemote {
		return 0
	}
	if cv.Location == "" || job.Location == "" {
		return 0
	}
	if utils.HasSubstringFold(job.Location, cv.Location) || utils.HasSubstringFold(cv.Location, job.Location) {
		return 0
	}
	return locationMismatchCost
}
