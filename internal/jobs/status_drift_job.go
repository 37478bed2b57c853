package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

const driftBatchSize = 500

// LinkedOrders loads the orders carried by a vehicle.
type LinkedOrders interface {
	ListByVehicle(ctx context.Context, tenantID, vehicleID kernel.UUID) ([]*order.Order, error)
}

// Drift is an order whose status is behind the one its vehicle implies.
type Drift struct {
	VehicleID     kernel.UUID
	VehicleStatus string
	OrderID       kernel.UUID
	OrderStatus   order.Status
}

// StatusDriftJob reports orders left behind by their vehicle. Synchronization
// skips are only logged when they happen, so this makes the lag visible
// without changing anything.
type StatusDriftJob struct {
	vehicles VehicleFinder
	orders   LinkedOrders
	schedule string
	cron     *cron.Cron
	cursor   pageCursor
	logger   *slog.Logger
}

func NewStatusDriftJob(vehicles VehicleFinder, orders LinkedOrders, schedule string, logger *slog.Logger) *StatusDriftJob {
	return &StatusDriftJob{
		vehicles: vehicles,
		orders:   orders,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "status_drift_job"),
	}
}

func (j *StatusDriftJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status drift job started", "schedule", j.schedule)
	return nil
}

func (j *StatusDriftJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status drift job stopped")
}

// RunOnce returns the lagging orders of the next batch of active vehicles.
func (j *StatusDriftJob) RunOnce(ctx context.Context) []Drift {
	drifts := make([]Drift, 0)

	active, err := j.vehicles.ListActive(ctx, j.cursor.position(), driftBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Listing active vehicles failed", "error", err)
		return drifts
	}
	j.cursor.advance(active, driftBatchSize)

	for _, v := range active {
		linked, err := j.orders.ListByVehicle(ctx, v.TenantID(), v.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Loading vehicle orders failed", "vehicle_id", v.ID().String(), "error", err)
			continue
		}

		for _, o := range linked {
			if !services.LagsBehind(o, v.Status()) {
				continue
			}
			d := Drift{
				VehicleID:     v.ID(),
				VehicleStatus: v.Status().String(),
				OrderID:       o.ID(),
				OrderStatus:   o.Status(),
			}
			drifts = append(drifts, d)
			j.logger.WarnContext(ctx, "Order lags behind its vehicle",
				"vehicle_id", d.VehicleID.String(),
				"vehicle_status", d.VehicleStatus,
				"order_id", d.OrderID.String(),
				"order_status", d.OrderStatus.String(),
			)
		}
	}

	return drifts
}
