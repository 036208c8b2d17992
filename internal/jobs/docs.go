// Package jobs provides scheduled background tasks for the order tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TokenSweepJob - Deletes notification tokens not refreshed within the retention window
//
// Permanently invalid tokens are already pruned by every dispatch; the sweep
// catches tokens of devices that simply stopped showing up.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(jobs.NewTokenSweepJob(handler, "0 0 3 * * *", 90*24*time.Hour, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six field cron expressions (seconds first). The default
// sweep runs daily at 03:00 server time.
//
// # Error Handling
//
// - Sweep failures are logged; the next run retries
// - Failed job starts will stop any already running jobs
package jobs
