package jobs

import (
	"fmt"
	"log/slog"

	"deliverybot/internal/core/application/usecases/commands"
	"deliverybot/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionCleanupJob *SessionCleanupJob
	sessionStatsJob   *SessionStatsJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command and query handlers as dependencies to wire up the job
// execution.
func NewJobManager(
	cleanupHandler commands.CleanupSessionsCommandHandler,
	statsHandler queries.GetActiveSessionsQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sessionCleanupJob: NewSessionCleanupJob(cleanupHandler, logger),
		sessionStatsJob:   NewSessionStatsJob(statsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start session cleanup job: %w", err)
	}

	if err := jm.sessionStatsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionCleanupJob.Stop()
		return fmt.Errorf("failed to start session stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sessionCleanupJob.Stop()
	jm.sessionStatsJob.Stop()
}
