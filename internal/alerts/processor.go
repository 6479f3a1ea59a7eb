package alerts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"jobpulse/internal/adzuna"
	"jobpulse/internal/config"
	"jobpulse/internal/logging"
	"jobpulse/internal/matcher"
	"jobpulse/internal/notify"
	"jobpulse/pkg/models"
)

// AlertStore is the slice of the persistence layer the processor needs.
type AlertStore interface {
	ListActiveAlerts(ctx context.Context) ([]models.JobAlert, error)
	MarkAlertSent(ctx context.Context, alertID string, sentAt time.Time) error
	GetCandidateProfile(ctx context.Context, userID string) (*models.CandidateProfile, error)
}

// JobFetcher fetches listings for an alert's saved search.
type JobFetcher interface {
	FetchJobs(ctx context.Context, params adzuna.SearchParams) *adzuna.SearchResult
}

// SkillExtractor derives the requirement set for scoring.
type SkillExtractor interface {
	ExtractJobSkillsCached(ctx context.Context, jobID, title, description string) *models.ExtractedJobSkills
}

// Processor re-runs saved searches on their cadence and notifies users of
// new matches. A failing alert never aborts the sweep; each one has its own
// error boundary and the summary reports the split.
type Processor struct {
	cfg      *config.Config
	store    AlertStore
	fetcher  JobFetcher
	ext      SkillExtractor
	notifier notify.Notifier
	logger   logging.Logger
	now      func() time.Time
}

// NewProcessor wires an alert processor.
func NewProcessor(cfg *config.Config, store AlertStore, fetcher JobFetcher, ext SkillExtractor, notifier notify.Notifier) *Processor {
	return &Processor{
		cfg:      cfg,
		store:    store,
		fetcher:  fetcher,
		ext:      ext,
		notifier: notifier,
		logger:   logging.GetGlobalLogger(),
		now:      time.Now,
	}
}

// ShouldRun reports whether the alert's cadence window has elapsed. An alert
// that has never fired runs immediately; an unknown frequency never runs.
func (p *Processor) ShouldRun(alert *models.JobAlert) bool {
	cadence, ok := alert.Cadence()
	if !ok {
		p.logger.Warn("Alert has unknown frequency, skipping", map[string]interface{}{
			"alert_id":  alert.ID,
			"frequency": alert.Frequency,
		})
		return false
	}
	if alert.LastSentAt == nil {
		return true
	}
	return p.now().Sub(*alert.LastSentAt) >= cadence
}

// ProcessAll runs one sweep over every active alert.
func (p *Processor) ProcessAll(ctx context.Context) (*models.AlertRunSummary, error) {
	alerts, err := p.store.ListActiveAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}

	summary := &models.AlertRunSummary{}
	for i := range alerts {
		alert := &alerts[i]

		if !p.ShouldRun(alert) {
			summary.Skipped++
			continue
		}

		summary.Processed++
		notified, err := p.processWithDeadline(ctx, alert)
		if err != nil {
			summary.Failed++
			p.logger.Error("Alert processing failed", map[string]interface{}{
				"alert_id": alert.ID,
				"user_id":  alert.UserID,
				"error":    err.Error(),
			})
			continue
		}
		if notified {
			summary.Notified++
		}
	}

	p.logger.Info("Alert sweep completed", map[string]interface{}{
		"processed": summary.Processed,
		"skipped":   summary.Skipped,
		"notified":  summary.Notified,
		"failed":    summary.Failed,
	})

	return summary, nil
}

// processWithDeadline gives each alert its own fetch budget. A slow alert
// exhausts only its own deadline, not the sweep's, so the alerts after it
// still start with a fresh one.
func (p *Processor) processWithDeadline(ctx context.Context, alert *models.JobAlert) (bool, error) {
	if p.cfg.Alerts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Alerts.FetchTimeout)
		defer cancel()
	}
	return p.ProcessAlert(ctx, alert)
}

// ProcessAlert re-runs one saved search and notifies the user when matches
// clear the threshold. last_sent_at only advances after a successful
// dispatch, so a run with no matches retries on the next sweep.
func (p *Processor) ProcessAlert(ctx context.Context, alert *models.JobAlert) (bool, error) {
	profile, err := p.store.GetCandidateProfile(ctx, alert.UserID)
	if err != nil {
		return false, fmt.Errorf("load profile: %w", err)
	}

	result := p.fetcher.FetchJobs(ctx, adzuna.SearchParams{
		Keyword:        alert.JobTitle,
		Location:       alert.Location,
		IsRemote:       alert.IsRemote,
		ResultsPerPage: p.cfg.Alerts.MaxJobsPerRun,
	})
	if result.Error != "" {
		return false, fmt.Errorf("fetch jobs: %s", result.Error)
	}
	if len(result.Jobs) == 0 {
		return false, nil
	}

	matches := p.scoreAndFilter(ctx, profile, result.Jobs, alert.MinMatchScore)
	if len(matches) == 0 {
		return false, nil
	}

	if err := p.notifier.SendJobAlert(ctx, alert, matches); err != nil {
		return false, fmt.Errorf("notify: %w", err)
	}

	if err := p.store.MarkAlertSent(ctx, alert.ID, p.now()); err != nil {
		// The email went out; log but do not fail the alert.
		p.logger.Error("Failed to record alert dispatch", map[string]interface{}{
			"alert_id": alert.ID,
			"error":    err.Error(),
		})
	}

	return true, nil
}

// scoreAndFilter attaches scores and keeps jobs at or above the threshold,
// sorted by score descending. Without a usable profile every job scores
// neutral, so only thresholds at or below the neutral score pass anything.
func (p *Processor) scoreAndFilter(ctx context.Context, profile *models.CandidateProfile, jobs []models.NormalizedJob, minScore int) []models.NormalizedJob {
	matches := make([]models.NormalizedJob, 0, len(jobs))

	for i := range jobs {
		job := jobs[i]

		var score int
		if profile.HasSkills() {
			skills := p.ext.ExtractJobSkillsCached(ctx, job.ID, job.Title, job.Description)
			score = matcher.Score(profile, &job, skills).Score
		} else {
			score = matcher.NeutralScore
		}

		if score < minScore {
			continue
		}
		job.MatchScore = &score
		matches = append(matches, job)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return *matches[i].MatchScore > *matches[j].MatchScore
	})

	return matches
}
