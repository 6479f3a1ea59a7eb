package extractor

import (
	"testing"
)

func TestFallbackExtractFindsSkills(t *testing.T) {
	skills := FallbackExtract(
		"Senior Backend Engineer",
		"We are looking for someone with strong Go, PostgreSQL and Docker experience. Kubernetes is a plus.",
	)

	want := map[string]bool{"Go": true, "PostgreSQL": true, "Docker": true, "Kubernetes": true}
	for _, s := range skills.RequiredSkills {
		delete(want, s)
	}
	if len(want) > 0 {
		t.Errorf("missing expected skills %v, got %v", want, skills.RequiredSkills)
	}
	if skills.ExperienceLevel != "Senior" {
		t.Errorf("experience level = %q, want Senior", skills.ExperienceLevel)
	}
}

func TestFallbackExtractCanonicalCasing(t *testing.T) {
	skills := FallbackExtract("Frontend Developer", "Experience with react and postgres required.")

	got := map[string]bool{}
	for _, s := range skills.RequiredSkills {
		got[s] = true
	}
	if !got["React"] {
		t.Errorf("expected canonical React, got %v", skills.RequiredSkills)
	}
	if !got["PostgreSQL"] {
		t.Errorf("expected canonical PostgreSQL, got %v", skills.RequiredSkills)
	}
}

func TestFallbackExtractNoFalsePositiveGo(t *testing.T) {
	skills := FallbackExtract("Marketing Manager", "A good opportunity to grow our outgoing category team.")

	for _, s := range skills.RequiredSkills {
		if s == "Go" {
			t.Errorf("matched Go inside unrelated words: %v", skills.RequiredSkills)
		}
	}
}

func TestFallbackExtractBoundaryTerms(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		text       string
		want       []string
		notAllowed []string
	}{
		{
			name:       "javascript does not yield Java",
			title:      "Frontend Developer",
			text:       "We need strong JavaScript and TypeScript experience.",
			want:       []string{"JavaScript", "TypeScript"},
			notAllowed: []string{"Java"},
		},
		{
			name:       "non-technical posting stays empty",
			title:      "Nurse",
			text:       "Excellent communication skills and interest in patient care required.",
			notAllowed: []string{"REST", "Excel", "Git", "SAP"},
		},
		{
			name:  "java as its own word",
			title: "Backend Engineer",
			text:  "Java and Spring Boot, plus REST APIs and Git.",
			want:  []string{"Java", "Spring", "REST", "Git"},
		},
		{
			name:  "spreadsheet posting finds Excel",
			title: "Financial Analyst",
			text:  "Advanced Excel modelling, SAP exposure a plus.",
			want:  []string{"Excel", "SAP"},
		},
		{
			name:       "sparkling digital legitimately stays empty",
			title:      "Barista",
			text:       "Serve sparkling drinks in our digital-first cafe, legitimate passion required.",
			notAllowed: []string{"Spark", "Git"},
		},
		{
			name:       "vitamin C does not yield a language",
			title:      "Nutritionist",
			text:       "Deep knowledge of vitamin C and dietary planning.",
			notAllowed: []string{"C", "R"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := FallbackExtract(tt.title, tt.text)
			got := map[string]bool{}
			for _, s := range skills.RequiredSkills {
				got[s] = true
			}
			for _, s := range tt.want {
				if !got[s] {
					t.Errorf("expected %s in %v", s, skills.RequiredSkills)
				}
			}
			for _, s := range tt.notAllowed {
				if got[s] {
					t.Errorf("false positive %s in %v", s, skills.RequiredSkills)
				}
			}
		})
	}
}

func TestFallbackExtractExperienceLevels(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"entry level position for recent graduates", "Junior"},
		{"we need an intermediate developer", "Mid"},
		{"principal engineer role", "Senior"},
		{"developer wanted", ""},
	}

	for _, tt := range tests {
		got := FallbackExtract("Developer", tt.text)
		if got.ExperienceLevel != tt.want {
			t.Errorf("inferExperienceLevel(%q) = %q, want %q", tt.text, got.ExperienceLevel, tt.want)
		}
	}
}

func TestFallbackExtractRemoteAndLocation(t *testing.T) {
	skills := FallbackExtract("Engineer", "Fully remote role. Our company is based in Singapore, near the river.")

	if !skills.IsRemote {
		t.Error("expected remote detection")
	}
	if skills.Location == "" {
		t.Error("expected a location to be captured")
	}
}

func TestFallbackExtractEmptyInput(t *testing.T) {
	skills := FallbackExtract("", "")

	if len(skills.RequiredSkills) != 0 {
		t.Errorf("expected no skills, got %v", skills.RequiredSkills)
	}
	if skills.IsRemote {
		t.Error("expected non-remote for empty input")
	}
}
