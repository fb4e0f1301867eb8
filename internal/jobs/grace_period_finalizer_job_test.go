package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGracePeriodFinalizer struct {
	mock.Mock
}

func (m *MockGracePeriodFinalizer) FinalizeExpiredGracePeriods(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestNewGracePeriodFinalizerJob_DefaultSchedule(t *testing.T) {
	job := NewGracePeriodFinalizerJob(new(MockGracePeriodFinalizer), "", slog.Default())

	assert.Equal(t, DefaultGracePeriodFinalizerSchedule, job.schedule)
}

func TestGracePeriodFinalizerJob_Run(t *testing.T) {
	t.Run("calls the finalizer", func(t *testing.T) {
		finalizer := new(MockGracePeriodFinalizer)
		finalizer.On("FinalizeExpiredGracePeriods", mock.Anything).Return(2, nil).Once()
		job := NewGracePeriodFinalizerJob(finalizer, "", slog.Default())

		job.run(t.Context())

		finalizer.AssertExpectations(t)
		assert.False(t, job.running)
	})

	t.Run("failure is absorbed", func(t *testing.T) {
		finalizer := new(MockGracePeriodFinalizer)
		finalizer.On("FinalizeExpiredGracePeriods", mock.Anything).Return(0, errors.New("db down")).Once()
		job := NewGracePeriodFinalizerJob(finalizer, "", slog.Default())

		assert.NotPanics(t, func() { job.run(t.Context()) })
		assert.False(t, job.running)
	})

	t.Run("overlapping run is skipped", func(t *testing.T) {
		finalizer := new(MockGracePeriodFinalizer)
		job := NewGracePeriodFinalizerJob(finalizer, "", slog.Default())
		job.running = true

		job.run(t.Context())

		finalizer.AssertNotCalled(t, "FinalizeExpiredGracePeriods", mock.Anything)
	})
}

func TestGracePeriodFinalizerJob_StartStop(t *testing.T) {
	t.Run("invalid schedule fails to start", func(t *testing.T) {
		job := NewGracePeriodFinalizerJob(new(MockGracePeriodFinalizer), "every now and then", slog.Default())

		require.Error(t, job.Start())
	})

	t.Run("manager starts and stops", func(t *testing.T) {
		finalizer := new(MockGracePeriodFinalizer)
		finalizer.On("FinalizeExpiredGracePeriods", mock.Anything).Return(0, nil).Maybe()
		manager := NewJobManager(finalizer, "0 0 0 1 1 *", slog.Default())

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})

	t.Run("manager reports a failed start", func(t *testing.T) {
		manager := NewJobManager(new(MockGracePeriodFinalizer), "bogus", slog.Default())

		assert.ErrorContains(t, manager.StartAll(), "grace period finalizer job")
	})
}
