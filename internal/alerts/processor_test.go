package alerts

import (
	"context"
	"testing"
	"time"

	"jobpulse/internal/adzuna"
	"jobpulse/internal/config"
	"jobpulse/pkg/models"
)

type fakeStore struct {
	alerts  []models.JobAlert
	profile *models.CandidateProfile
	sentIDs []string
}

func (f *fakeStore) ListActiveAlerts(ctx context.Context) ([]models.JobAlert, error) {
	return f.alerts, nil
}

func (f *fakeStore) MarkAlertSent(ctx context.Context, alertID string, sentAt time.Time) error {
	f.sentIDs = append(f.sentIDs, alertID)
	return nil
}

func (f *fakeStore) GetCandidateProfile(ctx context.Context, userID string) (*models.CandidateProfile, error) {
	return f.profile, nil
}

type fakeFetcher struct {
	result *adzuna.SearchResult
}

func (f *fakeFetcher) FetchJobs(ctx context.Context, params adzuna.SearchParams) *adzuna.SearchResult {
	return f.result
}

type fakeExtractor struct {
	skills *models.ExtractedJobSkills
}

func (f *fakeExtractor) ExtractJobSkillsCached(ctx context.Context, jobID, title, description string) *models.ExtractedJobSkills {
	return f.skills
}

type fakeNotifier struct {
	sent   int
	failed bool
}

func (f *fakeNotifier) SendJobAlert(ctx context.Context, alert *models.JobAlert, jobs []models.NormalizedJob) error {
	if f.failed {
		return context.DeadlineExceeded
	}
	f.sent++
	return nil
}

// slowOnceFetcher stalls its first call past the deadline and records the
// context state each call observes.
type slowOnceFetcher struct {
	delay   time.Duration
	calls   int
	ctxErrs []error
	jobs    []models.NormalizedJob
}

func (f *slowOnceFetcher) FetchJobs(ctx context.Context, params adzuna.SearchParams) *adzuna.SearchResult {
	f.calls++
	if f.calls == 1 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if err := ctx.Err(); err != nil {
		return &adzuna.SearchResult{Error: err.Error()}
	}
	return &adzuna.SearchResult{Jobs: f.jobs}
}

func testProcessor(t *testing.T, store *fakeStore, fetcher JobFetcher, ext *fakeExtractor, notifier *fakeNotifier) *Processor {
	t.Helper()
	cfg := &config.Config{}
	cfg.Alerts.MaxJobsPerRun = 10
	cfg.Alerts.FetchTimeout = time.Second
	return NewProcessor(cfg, store, fetcher, ext, notifier)
}

func TestShouldRun(t *testing.T) {
	p := testProcessor(t, &fakeStore{}, &fakeFetcher{}, &fakeExtractor{}, &fakeNotifier{})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	past := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name  string
		alert models.JobAlert
		want  bool
	}{
		{"never sent", models.JobAlert{Frequency: "daily"}, true},
		{"daily sent 10h ago", models.JobAlert{Frequency: "daily", LastSentAt: past(10 * time.Hour)}, false},
		{"daily sent 25h ago", models.JobAlert{Frequency: "daily", LastSentAt: past(25 * time.Hour)}, true},
		{"weekly sent 3d ago", models.JobAlert{Frequency: "weekly", LastSentAt: past(3 * 24 * time.Hour)}, false},
		{"weekly sent 8d ago", models.JobAlert{Frequency: "weekly", LastSentAt: past(8 * 24 * time.Hour)}, true},
		{"capitalized frequency", models.JobAlert{Frequency: "Daily", LastSentAt: past(25 * time.Hour)}, true},
		{"unknown frequency", models.JobAlert{Frequency: "hourly"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ShouldRun(&tt.alert); got != tt.want {
				t.Errorf("ShouldRun() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcessAlertNotifiesAndMarksSent(t *testing.T) {
	store := &fakeStore{
		profile: &models.CandidateProfile{UserID: "u1", Skills: []string{"Go", "Redis"}},
	}
	fetcher := &fakeFetcher{result: &adzuna.SearchResult{
		Jobs: []models.NormalizedJob{
			{ID: "j1", Title: "Go Engineer", LocationType: models.LocationRemote},
		},
	}}
	ext := &fakeExtractor{skills: &models.ExtractedJobSkills{RequiredSkills: []string{"Go"}}}
	notifier := &fakeNotifier{}

	p := testProcessor(t, store, fetcher, ext, notifier)
	alert := &models.JobAlert{ID: "a1", UserID: "u1", Frequency: "daily", MinMatchScore: 70, Email: "u@example.com"}

	notified, err := p.ProcessAlert(context.Background(), alert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !notified {
		t.Error("expected a notification")
	}
	if notifier.sent != 1 {
		t.Errorf("notifier.sent = %d, want 1", notifier.sent)
	}
	if len(store.sentIDs) != 1 || store.sentIDs[0] != "a1" {
		t.Errorf("sentIDs = %v, want [a1]", store.sentIDs)
	}
}

func TestProcessAlertNoMatchesDoesNotMarkSent(t *testing.T) {
	store := &fakeStore{
		profile: &models.CandidateProfile{UserID: "u1", Skills: []string{"Cobol"}},
	}
	fetcher := &fakeFetcher{result: &adzuna.SearchResult{
		Jobs: []models.NormalizedJob{
			{ID: "j1", Title: "Go Engineer", LocationType: models.LocationRemote},
		},
	}}
	ext := &fakeExtractor{skills: &models.ExtractedJobSkills{RequiredSkills: []string{"Go", "Kubernetes"}}}
	notifier := &fakeNotifier{}

	p := testProcessor(t, store, fetcher, ext, notifier)
	alert := &models.JobAlert{ID: "a1", UserID: "u1", Frequency: "daily", MinMatchScore: 70}

	notified, err := p.ProcessAlert(context.Background(), alert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notified {
		t.Error("expected no notification")
	}
	if len(store.sentIDs) != 0 {
		t.Errorf("sentIDs = %v, want none", store.sentIDs)
	}
}

func TestProcessAlertNotifierFailureDoesNotMarkSent(t *testing.T) {
	store := &fakeStore{
		profile: &models.CandidateProfile{UserID: "u1", Skills: []string{"Go"}},
	}
	fetcher := &fakeFetcher{result: &adzuna.SearchResult{
		Jobs: []models.NormalizedJob{
			{ID: "j1", Title: "Go Engineer", LocationType: models.LocationRemote},
		},
	}}
	ext := &fakeExtractor{skills: &models.ExtractedJobSkills{RequiredSkills: []string{"Go"}}}
	notifier := &fakeNotifier{failed: true}

	p := testProcessor(t, store, fetcher, ext, notifier)
	alert := &models.JobAlert{ID: "a1", UserID: "u1", Frequency: "daily", MinMatchScore: 50}

	notified, err := p.ProcessAlert(context.Background(), alert)
	if err == nil {
		t.Fatal("expected an error from the failing notifier")
	}
	if notified {
		t.Error("expected no notification")
	}
	if len(store.sentIDs) != 0 {
		t.Errorf("sentIDs = %v, want none", store.sentIDs)
	}
}

func TestProcessAllIsolatesFailures(t *testing.T) {
	now := time.Now()
	recently := now.Add(-time.Hour)
	store := &fakeStore{
		alerts: []models.JobAlert{
			{ID: "a1", UserID: "u1", Frequency: "daily", MinMatchScore: 50, Email: "u@example.com"},
			{ID: "a2", UserID: "u2", Frequency: "daily", LastSentAt: &recently},
			{ID: "a3", UserID: "u3", Frequency: "sometimes"},
		},
		profile: &models.CandidateProfile{Skills: []string{"Go"}},
	}
	fetcher := &fakeFetcher{result: &adzuna.SearchResult{
		Jobs: []models.NormalizedJob{
			{ID: "j1", Title: "Go Engineer", LocationType: models.LocationRemote},
		},
	}}
	ext := &fakeExtractor{skills: &models.ExtractedJobSkills{RequiredSkills: []string{"Go"}}}
	notifier := &fakeNotifier{}

	p := testProcessor(t, store, fetcher, ext, notifier)

	summary, err := p.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Processed != 1 {
		t.Errorf("processed = %d, want 1", summary.Processed)
	}
	if summary.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", summary.Skipped)
	}
	if summary.Notified != 1 {
		t.Errorf("notified = %d, want 1", summary.Notified)
	}
}

func TestProcessAllGivesEachAlertItsOwnDeadline(t *testing.T) {
	store := &fakeStore{
		alerts: []models.JobAlert{
			{ID: "a1", UserID: "u1", Frequency: "daily", MinMatchScore: 50, Email: "u1@example.com"},
			{ID: "a2", UserID: "u2", Frequency: "daily", MinMatchScore: 50, Email: "u2@example.com"},
		},
		profile: &models.CandidateProfile{Skills: []string{"Go"}},
	}
	fetcher := &slowOnceFetcher{
		delay: 100 * time.Millisecond,
		jobs: []models.NormalizedJob{
			{ID: "j1", Title: "Go Engineer", LocationType: models.LocationRemote},
		},
	}
	ext := &fakeExtractor{skills: &models.ExtractedJobSkills{RequiredSkills: []string{"Go"}}}
	notifier := &fakeNotifier{}

	p := testProcessor(t, store, fetcher, ext, notifier)
	p.cfg.Alerts.FetchTimeout = 30 * time.Millisecond

	summary, err := p.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Failed != 1 {
		t.Errorf("failed = %d, want 1 (the stalled alert)", summary.Failed)
	}
	if summary.Notified != 1 {
		t.Errorf("notified = %d, want 1 (the alert after the stalled one)", summary.Notified)
	}
	if len(fetcher.ctxErrs) != 2 {
		t.Fatalf("fetch calls = %d, want 2", len(fetcher.ctxErrs))
	}
	if fetcher.ctxErrs[0] == nil {
		t.Error("stalled alert should have run out of its deadline")
	}
	if fetcher.ctxErrs[1] != nil {
		t.Errorf("second alert inherited an expired deadline: %v", fetcher.ctxErrs[1])
	}
}
