package providers

import (
	"strings"
	"testing"
)

func TestParseSkillsResponse(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantSkills []string
		wantLevel  string
		wantRemote bool
		wantErr    bool
	}{
		{
			name:       "plain json",
			response:   `{"required_skills":["Go","PostgreSQL"],"experience_level":"Senior","location":"Singapore","is_remote":false}`,
			wantSkills: []string{"Go", "PostgreSQL"},
			wantLevel:  "Senior",
		},
		{
			name:       "json wrapped in code fences",
			response:   "```json\n{\"required_skills\":[\"React\"],\"experience_level\":\"junior\",\"is_remote\":true}\n```",
			wantSkills: []string{"React"},
			wantLevel:  "Junior",
			wantRemote: true,
		},
		{
			name:       "duplicates and blanks dropped",
			response:   `{"required_skills":["Go","go","","  ","Docker"],"experience_level":"intermediate"}`,
			wantSkills: []string{"Go", "Docker"},
			wantLevel:  "Mid",
		},
		{
			name:       "unknown experience level is cleared",
			response:   `{"required_skills":["Go"],"experience_level":"ninja"}`,
			wantSkills: []string{"Go"},
			wantLevel:  "",
		},
		{
			name:     "not json",
			response: "Sure! Here are the skills I found:",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSkillsResponse(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got.RequiredSkills, ",") != strings.Join(tt.wantSkills, ",") {
				t.Errorf("skills = %v, want %v", got.RequiredSkills, tt.wantSkills)
			}
			if got.ExperienceLevel != tt.wantLevel {
				t.Errorf("experience level = %q, want %q", got.ExperienceLevel, tt.wantLevel)
			}
			if got.IsRemote != tt.wantRemote {
				t.Errorf("is_remote = %v, want %v", got.IsRemote, tt.wantRemote)
			}
		})
	}
}

func TestParseAnalysisResponse(t *testing.T) {
	response := "```\n" + `{
		"score": 130,
		"match_reasons": ["strong Go background"],
		"missing_skills": ["Kubernetes"],
		"advice": "Highlight infrastructure work.",
		"category_scores": {"technical_skills": 90, "experience": 80, "education": -5, "soft_skills": 70}
	}` + "\n```"

	got, err := ParseAnalysisResponse(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 100 {
		t.Errorf("score = %d, want clamped 100", got.Score)
	}
	if got.CategoryScores == nil {
		t.Fatal("expected category scores")
	}
	if got.CategoryScores.Education != 0 {
		t.Errorf("education = %d, want clamped 0", got.CategoryScores.Education)
	}
	if len(got.MatchReasons) != 1 || len(got.MissingSkills) != 1 {
		t.Errorf("unexpected reasons/missing: %v / %v", got.MatchReasons, got.MissingSkills)
	}
}

func TestParseAnalysisResponseDefaultsSlices(t *testing.T) {
	got, err := ParseAnalysisResponse(`{"score": 40, "advice": "Broaden your skills."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MatchReasons == nil || got.MissingSkills == nil {
		t.Error("expected empty slices, not nil")
	}
}
