package notify

import (
	"context"

	"jobpulse/pkg/models"
)

// Notifier delivers alert digests to users. Implementations must be safe
// for concurrent use; the scheduler notifies many alerts in one sweep.
type Notifier interface {
	// SendJobAlert emails the matched jobs for one alert run.
	SendJobAlert(ctx context.Context, alert *models.JobAlert, jobs []models.NormalizedJob) error
}
