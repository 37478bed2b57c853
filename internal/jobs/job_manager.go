package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliationJob *CompletionReconciliationJob
	driftJob          *StatusDriftJob
}

// NewJobManager creates both jobs on the same schedule.
func NewJobManager(
	reconciler CompletionReconciler,
	vehicles VehicleFinder,
	orders LinkedOrders,
	schedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reconciliationJob: NewCompletionReconciliationJob(reconciler, vehicles, schedule, logger),
		driftJob:          NewStatusDriftJob(vehicles, orders, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start completion reconciliation job: %w", err)
	}

	if err := jm.driftJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationJob.Stop()
		return fmt.Errorf("failed to start status drift job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.driftJob.Stop()
	jm.reconciliationJob.Stop()
}
