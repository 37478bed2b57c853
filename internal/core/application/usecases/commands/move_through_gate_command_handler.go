package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// MoveThroughGateCommandHandler advances the gate pass and the vehicle or order it refers to.
type MoveThroughGateCommandHandler struct {
	uowFactory GateUoWFactory
	documents  ports.DocumentStore
	logger     *slog.Logger
}

func NewMoveThroughGateCommandHandler(
	uowFactory GateUoWFactory,
	documents ports.DocumentStore,
	logger *slog.Logger,
) MoveThroughGateCommandHandler {
	return MoveThroughGateCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
		logger:     loggerOrDefault(logger),
	}
}

// Handle moves the pass first. A linked vehicle follows to GATE_IN or GATE_OUT
// unless it is already there or further, and its orders are synchronized. A
// vehicle leaving the gate needs its trip invoice.
// A pass without a vehicle moves its order directly.
func (h MoveThroughGateCommandHandler) Handle(
	ctx context.Context,
	cmd MoveThroughGateCommand,
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

	passRepo := uow.GatePassRepository()
	pass, err := passRepo.Get(ctx, tenantID, cmd.GatePassID())
	if err != nil {
		return services.SyncReport{}, err
	}

	vehicleTarget, orderTarget := vehicle.GateIn, order.GateIn
	if cmd.Direction() == DirectionOut {
		vehicleTarget, orderTarget = vehicle.GateOut, order.GateOut
		err = pass.GateOut(cmd.At())
	} else {
		err = pass.GateIn(cmd.At())
	}
	if err != nil {
		return services.SyncReport{}, err
	}

	if err = passRepo.Update(ctx, pass); err != nil {
		return services.SyncReport{}, err
	}

	var report services.SyncReport
	switch {
	case pass.VehicleID() != nil:
		report, err = h.moveVehicle(ctx, uow, tenantID, *pass.VehicleID(), vehicleTarget, cmd)
	case pass.OrderID() != nil:
		err = h.moveOrder(ctx, uow, tenantID, *pass.OrderID(), orderTarget)
	}
	if err != nil {
		return services.SyncReport{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.SyncReport{}, err
	}

	return report, nil
}

func (h MoveThroughGateCommandHandler) moveVehicle(
	ctx context.Context,
	uow GateUoW,
	tenantID, vehicleID kernel.UUID,
	target vehicle.Status,
	cmd MoveThroughGateCommand,
) (services.SyncReport, error) {
	vehicleRepo := uow.VehicleRepository()
	v, err := vehicleRepo.GetForUpdate(ctx, tenantID, vehicleID)
	if err != nil {
		return services.SyncReport{}, err
	}

	if v.IsAtOrAfter(target) {
		return services.SyncReport{VehicleStatus: v.Status()}, nil
	}

	if err = v.CheckTransition(target); err != nil {
		return services.SyncReport{}, err
	}
	if err = requireTripInvoice(ctx, h.documents, v, target); err != nil {
		return services.SyncReport{}, err
	}

	if err = v.TransitionTo(target, cmd.At()); err != nil {
		return services.SyncReport{}, err
	}
	if err = vehicleRepo.Update(ctx, v); err != nil {
		return services.SyncReport{}, err
	}

	return syncLinkedOrders(ctx, uow.OrderRepository(), v, h.logger)
}

func (h MoveThroughGateCommandHandler) moveOrder(
	ctx context.Context,
	uow GateUoW,
	tenantID, orderID kernel.UUID,
	target order.Status,
) error {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, tenantID, orderID)
	if err != nil {
		return err
	}

	if o.Status() == target {
		return nil
	}
	if err = o.TransitionTo(target); err != nil {
		return err
	}

	return orderRepo.Update(ctx, o)
}

