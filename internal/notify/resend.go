package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"jobpulse/internal/config"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"
)

// ResendNotifier sends alert digests through the Resend email API. When no
// API key is configured the notifier is disabled and SendJobAlert returns an
// error, so the scheduler skips the alert instead of silently dropping it.
type ResendNotifier struct {
	cfg    *config.Config
	client *http.Client
	logger logging.Logger
}

// NewResendNotifier creates a notifier bounded by the configured timeout.
func NewResendNotifier(cfg *config.Config) *ResendNotifier {
	return &ResendNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Notify.Timeout},
		logger: logging.GetGlobalLogger(),
	}
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendJobAlert emails the matched jobs for one alert run, retrying transient
// failures with a short backoff.
func (n *ResendNotifier) SendJobAlert(ctx context.Context, alert *models.JobAlert, jobs []models.NormalizedJob) error {
	if !n.cfg.Notify.Enabled || n.cfg.Notify.APIKey == "" {
		return fmt.Errorf("notifier is not configured (set NOTIFY_API_KEY)")
	}
	if alert.Email == "" {
		return fmt.Errorf("alert %s has no email address", alert.ID)
	}

	payload, err := json.Marshal(sendEmailRequest{
		From:    n.cfg.Notify.From,
		To:      []string{alert.Email},
		Subject: fmt.Sprintf("%d new job matches for %q", len(jobs), alert.JobTitle),
		HTML:    renderDigest(alert, jobs),
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= n.cfg.Notify.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		lastErr = n.send(ctx, payload)
		if lastErr == nil {
			n.logger.Info("Alert notification sent", map[string]interface{}{
				"alert_id": alert.ID,
				"user_id":  alert.UserID,
				"jobs":     len(jobs),
			})
			return nil
		}
	}

	return fmt.Errorf("send alert email: %w", lastErr)
}

func (n *ResendNotifier) send(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Notify.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.Notify.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("email API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// renderDigest builds the HTML body: one block per job with title, company,
// location, score and the apply link.
func renderDigest(alert *models.JobAlert, jobs []models.NormalizedJob) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<h2>New matches for %q</h2>", html.EscapeString(alert.JobTitle)))
	b.WriteString("<p>These listings cleared your match threshold:</p>")

	for _, job := range jobs {
		b.WriteString("<div style=\"margin-bottom:16px\">")
		b.WriteString(fmt.Sprintf("<strong>%s</strong> at %s<br>",
			html.EscapeString(job.Title), html.EscapeString(job.Company)))
		if job.Location != "" {
			b.WriteString(html.EscapeString(job.Location) + "<br>")
		}
		if job.MatchScore != nil {
			b.WriteString(fmt.Sprintf("Match score: %d%%<br>", *job.MatchScore))
		}
		b.WriteString(fmt.Sprintf("<a href=\"%s\">View listing</a>", html.EscapeString(job.URL)))
		b.WriteString("</div>")
	}

	return b.String()
}
