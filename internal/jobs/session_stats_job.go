package jobs

import (
	"context"
	"log/slog"

	"deliverybot/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// SessionStatsJob periodically logs how many conversations are in progress.
// The count feeds operational dashboards built on log aggregation.
type SessionStatsJob struct {
	handler queries.GetActiveSessionsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSessionStatsJob creates the stats job.
// Uses GetActiveSessionsQueryHandler to count live sessions every 5 minutes.
func NewSessionStatsJob(handler queries.GetActiveSessionsQueryHandler, logger *slog.Logger) *SessionStatsJob {
	return &SessionStatsJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "session_stats_job"),
	}
}

// Start begins the stats job to run every 5 minutes.
func (j *SessionStatsJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetActiveSessionsQuery()

		sessions, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Session stats job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Live sessions", "count", len(sessions))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session stats job started (running every 5 minutes)")
	return nil
}

// Stop stops the stats job.
func (j *SessionStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session stats job stopped")
}
