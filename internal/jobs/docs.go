// Package jobs provides scheduled background tasks for the engine.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with seconds).
//
// # Available Jobs
//
// 1. CompletionReconciliationJob - re-evaluates the completion policy for vehicles that
// hold a COMPLETED balance or full shipping request but are not COMPLETED yet, e.g.
// because the proof of delivery was attached after the payment was linked
// 2. StatusDriftJob - reports orders whose status is behind the one their vehicle implies
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, vehicleRepo, orderRepo, "0 */5 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A vehicle that fails to reconcile is logged and retried on the next run
// - Failed job starts will stop any already running jobs
package jobs
