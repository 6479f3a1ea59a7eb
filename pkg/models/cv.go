package models

// CandidateProfile is the read-only scoring input owned by the CV-management
// collaborator: the parsed skill list plus the experience level and location
// recorded on the user's profile.
type CandidateProfile struct {
	UserID      string   `json:"user_id"`
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience,omitempty"` // e.g. "Mid", "Senior"
	Location    string   `json:"location,omitempty"`
	WantsRemote bool     `json:"wants_remote"`
}

// HasSkills reports whether the profile carries anything worth scoring
// against.
func (p *CandidateProfile) HasSkills() bool {
	return p != nil && len(p.Skills) > 0
}
