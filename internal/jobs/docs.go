// Package jobs provides scheduled background tasks for the order-data service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. GracePeriodFinalizerJob - confirms status update windows that expired
// without the operator confirming or reverting them
//
// # Usage
//
//	jobManager := jobs.NewJobManager(orderDataService, config.GraceFinalizerSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Orders changed between
// listing and confirming are skipped by the finalizer itself.
package jobs
