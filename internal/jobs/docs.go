// Package jobs provides scheduled background tasks for the delivery
// calculator.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the conversation store.
//
// # Available Jobs
//
// 1. SessionCleanupJob - Runs every 10 minutes to drop conversations idle longer than 24 hours
// 2. SessionStatsJob - Runs every 5 minutes to log the number of live conversations
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cleanupHandler, statsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Cleanup job logs failures and reports how many sessions it removed
// - Stats job failures are logged and skipped until the next tick
// - Failed job starts will stop any already running jobs
package jobs
