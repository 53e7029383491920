package jobs

import (
	"context"
	"log/slog"
	"time"

	"deliverybot/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SessionTTL is how long a conversation may stay idle before the cleanup job
// drops it.
const SessionTTL = 24 * time.Hour

// SessionCleanupJob periodically drops conversations abandoned mid-flow so
// the next message from such a chat starts a fresh calculation.
type SessionCleanupJob struct {
	handler commands.CleanupSessionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSessionCleanupJob creates the cleanup job.
// Uses CleanupSessionsCommandHandler to drop stale sessions every 10 minutes.
func NewSessionCleanupJob(handler commands.CleanupSessionsCommandHandler, logger *slog.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "session_cleanup_job"),
	}
}

// Start begins the cleanup job to run every 10 minutes.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 */10 * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCleanupSessionsCommand(SessionTTL)
		if err != nil {
			j.logger.ErrorContext(ctx, "Building cleanup command failed", "error", err)
			return
		}

		removed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Session cleanup job failed", "error", err)
			return
		}

		if removed > 0 {
			j.logger.InfoContext(ctx, "Stale sessions removed", "count", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started (running every 10 minutes)")
	return nil
}

// Stop stops the cleanup job.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}
