package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	gracePeriodFinalizerJob *GracePeriodFinalizerJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(finalizer GracePeriodFinalizer, finalizerSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		gracePeriodFinalizerJob: NewGracePeriodFinalizerJob(finalizer, finalizerSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.gracePeriodFinalizerJob.Start(); err != nil {
		return fmt.Errorf("failed to start grace period finalizer job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.gracePeriodFinalizerJob.Stop()
}
