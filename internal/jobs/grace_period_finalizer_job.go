package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultGracePeriodFinalizerSchedule runs the finalizer every five seconds.
const DefaultGracePeriodFinalizerSchedule = "*/5 * * * * *"

// GracePeriodFinalizer closes status update windows that elapsed without a decision.
type GracePeriodFinalizer interface {
	FinalizeExpiredGracePeriods(ctx context.Context) (int, error)
}

// GracePeriodFinalizerJob confirms expired grace periods on a cron schedule.
// Runs never overlap: a tick that finds the previous run still busy is skipped.
type GracePeriodFinalizerJob struct {
	finalizer GracePeriodFinalizer
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewGracePeriodFinalizerJob creates the job. An empty schedule falls back to
// DefaultGracePeriodFinalizerSchedule.
func NewGracePeriodFinalizerJob(finalizer GracePeriodFinalizer, schedule string, logger *slog.Logger) *GracePeriodFinalizerJob {
	if schedule == "" {
		schedule = DefaultGracePeriodFinalizerSchedule
	}
	return &GracePeriodFinalizerJob{
		finalizer: finalizer,
		schedule:  schedule,
		timeout:   30 * time.Second,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "grace_period_finalizer_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *GracePeriodFinalizerJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Grace period finalizer job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running finalization to return.
func (j *GracePeriodFinalizerJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Grace period finalizer job stopped")
}

func (j *GracePeriodFinalizerJob) run(ctx context.Context) {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		j.running = false
		j.mu.Unlock()
	}()

	finalized, err := j.finalizer.FinalizeExpiredGracePeriods(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Grace period finalization failed", "finalized", finalized, "error", err)
		return
	}
	if finalized > 0 {
		j.logger.InfoContext(ctx, "Expired grace periods confirmed", "finalized", finalized)
	}
}
