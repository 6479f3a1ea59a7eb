package adzuna

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobpulse/internal/config"
)

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Adzuna.AppID = "test-id"
	cfg.Adzuna.AppKey = "test-key"
	cfg.Adzuna.BaseURL = baseURL
	cfg.Adzuna.CountryCode = "sg"
	cfg.Adzuna.DefaultKeyword = "Developer"
	cfg.Adzuna.MaxDays = 14
	cfg.Adzuna.RequestTimeout = 5 * time.Second
	return cfg
}

func TestFetchJobsMissingCredentials(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.Adzuna.AppID = ""

	client := NewClient(cfg)
	result := client.FetchJobs(context.Background(), SearchParams{Keyword: "go"})

	if result.Error == "" {
		t.Error("expected an error in the envelope")
	}
	if len(result.Jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(result.Jobs))
	}
}

func TestFetchJobsUpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	result := client.FetchJobs(context.Background(), SearchParams{Keyword: "go"})

	if result.Error == "" {
		t.Error("expected an error in the envelope")
	}
	if len(result.Jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(result.Jobs))
	}
}

func TestFetchJobsNormalizesAndFilters(t *testing.T) {
	fresh := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	stale := time.Now().Add(-30 * 24 * time.Hour).Format(time.RFC3339)

	var gotQuery map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"count": 2,
			"results": [
				{
					"id": 101,
					"title": "Go Engineer",
					"description": "<p>Build services in <b>Go</b> &amp; Redis.</p>",
					"company": {"display_name": "Acme"},
					"location": {"display_name": "Singapore"},
					"salary_min": 80000,
					"salary_max": 120000,
					"created": %q,
					"redirect_url": "https://example.com/101"
				},
				{
					"id": 102,
					"title": "Old Listing",
					"description": "Expired role",
					"company": {"display_name": "Stale Inc"},
					"location": {"display_name": "Singapore"},
					"created": %q,
					"redirect_url": "https://example.com/102"
				}
			]
		}`, fresh, stale)
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	result := client.FetchJobs(context.Background(), SearchParams{Keyword: "go engineer"})

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if len(result.Jobs) != 1 {
		t.Fatalf("expected the stale listing to be filtered, got %d jobs", len(result.Jobs))
	}

	job := result.Jobs[0]
	if job.ID != "101" {
		t.Errorf("id = %q, want 101", job.ID)
	}
	if job.Description != "Build services in Go & Redis." {
		t.Errorf("description not stripped: %q", job.Description)
	}
	if job.Salary == nil || job.Salary.Currency != "SGD" {
		t.Errorf("expected SGD salary, got %+v", job.Salary)
	}
	if result.Total != 2 {
		t.Errorf("total = %d, want 2", result.Total)
	}

	if got := gotQuery["sort_by"]; len(got) != 1 || got[0] != "date" {
		t.Errorf("sort_by = %v, want [date]", got)
	}
	if got := gotQuery["what"]; len(got) != 1 || got[0] != "go engineer" {
		t.Errorf("what = %v, want the keyword", got)
	}
}

func TestFetchJobsRemoteRecheck(t *testing.T) {
	created := time.Now().Add(-time.Hour).Format(time.RFC3339)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"count": 2,
			"results": [
				{"id": 1, "title": "Remote Go Engineer", "description": "Fully remote", "created": %q},
				{"id": 2, "title": "Office Manager", "description": "On site only", "created": %q}
			]
		}`, created, created)
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	result := client.FetchJobs(context.Background(), SearchParams{Keyword: "go", IsRemote: true})

	if len(result.Jobs) != 1 {
		t.Fatalf("expected only the remote listing, got %d", len(result.Jobs))
	}
	if result.Jobs[0].ID != "1" {
		t.Errorf("id = %q, want 1", result.Jobs[0].ID)
	}
}

func TestFetchJobByIDNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	job, err := client.FetchJobByID(context.Background(), "999", "")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job != nil {
		t.Errorf("expected nil job, got %+v", job)
	}
}

func TestFetchCategories(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results": [{"tag": "it-jobs", "label": "IT Jobs"}]}`)
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	categories, err := client.FetchCategories(context.Background(), "")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 1 || categories[0].Tag != "it-jobs" {
		t.Errorf("categories = %+v", categories)
	}
}
