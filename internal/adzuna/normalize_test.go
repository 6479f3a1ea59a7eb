package adzuna

import (
	"testing"

	"jobpulse/pkg/models"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tags removed", "<p>Build <b>services</b></p>", "Build services"},
		{"entities decoded", "Go &amp; Redis&nbsp;work", "Go & Redis work"},
		{"whitespace collapsed", "one\n\n  two\t three", "one two three"},
		{"plain text untouched", "nothing to strip", "nothing to strip"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInferLocationType(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		desc     string
		location string
		want     models.LocationType
	}{
		{"remote in title", "Remote Go Engineer", "", "", models.LocationRemote},
		{"wfh in description", "Engineer", "wfh friendly team", "", models.LocationRemote},
		{"hybrid wins over remote", "Engineer", "hybrid role, partially remote", "", models.LocationHybrid},
		{"hybrid only", "Engineer", "hybrid working model", "", models.LocationHybrid},
		{"default onsite", "Engineer", "join our office", "Singapore", models.LocationOnsite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferLocationType(tt.title, tt.desc, tt.location); got != tt.want {
				t.Errorf("inferLocationType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCurrencyForCountry(t *testing.T) {
	if got := currencyForCountry("sg"); got != "SGD" {
		t.Errorf("sg = %q, want SGD", got)
	}
	if got := currencyForCountry("GB"); got != "GBP" {
		t.Errorf("GB = %q, want GBP", got)
	}
	if got := currencyForCountry("xx"); got != "USD" {
		t.Errorf("unknown country = %q, want USD fallback", got)
	}
}

func TestNormalizeJobLocationFallsBackToArea(t *testing.T) {
	job := normalizeJob(rawJob{
		ID:       "7",
		Title:    "Engineer",
		Location: rawLocation{Area: []string{"Singapore", "Central"}},
	}, "sg")

	if job.Location != "Singapore, Central" {
		t.Errorf("location = %q", job.Location)
	}
	if job.Source != models.JobSourceAdzuna {
		t.Errorf("source = %q", job.Source)
	}
	if job.Salary != nil {
		t.Error("expected no salary when no figures are present")
	}
}
