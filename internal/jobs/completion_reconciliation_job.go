package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// reconcileBatchSize bounds the vehicles evaluated per run.
const reconcileBatchSize = 100

// CompletionReconciler evaluates the completion policy for one vehicle.
type CompletionReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileVehicleCompletionCommand) (services.CompletionDecision, error)
}

// VehicleFinder lists vehicles across tenants for background evaluation, in
// pages ordered by ID that start after the given ID.
type VehicleFinder interface {
	ListAwaitingCompletion(ctx context.Context, after *kernel.UUID, limit int) ([]*vehicle.Vehicle, error)
	ListActive(ctx context.Context, after *kernel.UUID, limit int) ([]*vehicle.Vehicle, error)
}

// ReconcileStats summarizes one run.
type ReconcileStats struct {
	Evaluated int
	Completed int
	Failed    int
}

// CompletionReconciliationJob completes vehicles whose balance was paid before
// the proof of delivery arrived, or whose completion failed after payment.
type CompletionReconciliationJob struct {
	handler  CompletionReconciler
	vehicles VehicleFinder
	schedule string
	cron     *cron.Cron
	cursor   pageCursor
	logger   *slog.Logger
	now      func() time.Time
}

func NewCompletionReconciliationJob(
	handler CompletionReconciler,
	vehicles VehicleFinder,
	schedule string,
	logger *slog.Logger,
) *CompletionReconciliationJob {
	return &CompletionReconciliationJob{
		handler:  handler,
		vehicles: vehicles,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "completion_reconciliation_job"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules RunOnce. The schedule is a six-field cron expression.
func (j *CompletionReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Completion reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running evaluation to finish.
func (j *CompletionReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Completion reconciliation job stopped")
}

// RunOnce evaluates the next batch of vehicles awaiting completion, continuing
// where the previous run stopped. A failing vehicle is logged and does not stop
// the others.
func (j *CompletionReconciliationJob) RunOnce(ctx context.Context) ReconcileStats {
	stats := ReconcileStats{}

	pending, err := j.vehicles.ListAwaitingCompletion(ctx, j.cursor.position(), reconcileBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Listing vehicles awaiting completion failed", "error", err)
		return stats
	}
	j.cursor.advance(pending, reconcileBatchSize)

	for _, v := range pending {
		stats.Evaluated++

		cmd, err := commands.NewReconcileVehicleCompletionCommand(v.TenantID(), v.ID(), j.now())
		if err != nil {
			stats.Failed++
			j.logger.ErrorContext(ctx, "Invalid reconciliation command", "vehicle_id", v.ID().String(), "error", err)
			continue
		}

		decision, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			stats.Failed++
			j.logger.ErrorContext(ctx, "Vehicle reconciliation failed",
				"vehicle_id", v.ID().String(),
				"vehicle_number", v.Number(),
				"error", err,
			)
			continue
		}

		if decision.Outcome == services.CompletionAdvanced {
			stats.Completed++
			j.logger.InfoContext(ctx, "Vehicle completed by reconciliation",
				"vehicle_id", v.ID().String(),
				"vehicle_number", v.Number(),
				"orders_updated", decision.Sync.UpdatedCount(),
			)
		}
	}

	return stats
}
