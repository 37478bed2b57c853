package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// syncLinkedOrders pushes the vehicle status to every order linked to it and
// persists the orders that moved. Skipped orders are logged, never raised.
func syncLinkedOrders(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	v *vehicle.Vehicle,
	logger *slog.Logger,
) (services.SyncReport, error) {
	linked, err := orderRepo.ListByVehicle(ctx, v.TenantID(), v.ID())
	if err != nil {
		return services.SyncReport{}, err
	}

	report := services.NewStatusSynchronizer().Sync(v.Status(), linked)
	if err = persistSync(ctx, orderRepo, report, linked); err != nil {
		return services.SyncReport{}, err
	}
	logSkipped(logger, v, report)

	return report, nil
}

func persistSync(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	report services.SyncReport,
	orders []*order.Order,
) error {
	for _, o := range report.UpdatedOrders(orders) {
		if err := orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func logSkipped(logger *slog.Logger, v *vehicle.Vehicle, report services.SyncReport) {
	for _, res := range report.Skipped() {
		attrs := []any{
			"vehicle_id", v.ID().String(),
			"vehicle_status", report.VehicleStatus.String(),
			"order_id", res.OrderID.String(),
			"order_status", res.From.String(),
			"outcome", res.Outcome.String(),
		}
		if res.Err != nil {
			attrs = append(attrs, "error", res.Err)
		}
		logger.Warn("order not synchronized with vehicle", attrs...)
	}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
