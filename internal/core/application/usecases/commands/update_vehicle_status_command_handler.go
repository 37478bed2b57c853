package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// UpdateVehicleStatusCommandHandler applies a vehicle transition and pushes the
// new status to the linked orders.
type UpdateVehicleStatusCommandHandler struct {
	uowFactory FleetUoWFactory
	documents  ports.DocumentStore
	logger     *slog.Logger
}

func NewUpdateVehicleStatusCommandHandler(
	uowFactory FleetUoWFactory,
	documents ports.DocumentStore,
	logger *slog.Logger,
) UpdateVehicleStatusCommandHandler {
	return UpdateVehicleStatusCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
		logger:     loggerOrDefault(logger),
	}
}

// Handle returns the synchronization report of the linked orders. Orders that
// could not follow are listed in the report and do not fail the command.
func (h UpdateVehicleStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateVehicleStatusCommand,
) (services.SyncReport, error) {
	if err := cmd.Validate(); err != nil {
		return services.SyncReport{}, err
	}
	tenantID := cmd.Caller().TenantID()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.SyncReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vehicleRepo := uow.VehicleRepository()
	v, err := vehicleRepo.GetForUpdate(ctx, tenantID, cmd.VehicleID())
	if err != nil {
		return services.SyncReport{}, err
	}

	if err = vehicle.Sequence().AssertForward(v.Status(), cmd.Status()); err != nil {
		return services.SyncReport{}, err
	}

	if qty := cmd.LoadingQuantity(); qty != nil {
		if err = v.SetLoadingQuantity(*qty); err != nil {
			return services.SyncReport{}, err
		}
	}

	if err = requireTripInvoice(ctx, h.documents, v, cmd.Status()); err != nil {
		return services.SyncReport{}, err
	}

	if err = v.TransitionTo(cmd.Status(), cmd.At()); err != nil {
		return services.SyncReport{}, err
	}

	if err = vehicleRepo.Update(ctx, v); err != nil {
		return services.SyncReport{}, err
	}

	report, err := syncLinkedOrders(ctx, uow.OrderRepository(), v, h.logger)
	if err != nil {
		return services.SyncReport{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.SyncReport{}, err
	}

	return report, nil
}
