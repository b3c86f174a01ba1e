package jobs

import (
	"fmt"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/rs/zerolog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	offerSweepJob *OfferSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers and schedules as dependencies to wire up the
// job execution.
func NewJobManager(
	sweepHandler commands.SweepExpiredOffersCommandHandler,
	sweepSchedule string,
	log zerolog.Logger,
) *JobManager {
	return &JobManager{
		offerSweepJob: NewOfferSweepJob(sweepHandler, sweepSchedule, log),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.offerSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.offerSweepJob.Stop()
}
