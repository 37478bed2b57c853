package commands

import (
	"context"

	"logistics/internal/core/domain/model/gatepass"
)

// CheckInCommandHandler creates gate passes. The vehicle keeps its status:
// it moves on gate-in, and until then the pass may still be deleted.
type CheckInCommandHandler struct {
	uowFactory GateUoWFactory
}

func NewCheckInCommandHandler(uowFactory GateUoWFactory) CheckInCommandHandler {
	return CheckInCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CheckInCommandHandler) Handle(ctx context.Context, cmd CheckInCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	tenantID := cmd.Caller().TenantID()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if id := cmd.VehicleID(); id != nil {
		if _, err := uow.VehicleRepository().Get(ctx, tenantID, *id); err != nil {
			return err
		}
	}
	if id := cmd.OrderID(); id != nil {
		if _, err := uow.OrderRepository().Get(ctx, tenantID, *id); err != nil {
			return err
		}
	}

	pass, err := gatepass.NewGatePass(cmd.GatePassID(), tenantID, cmd.VehicleID(), cmd.OrderID(), cmd.At())
	if err != nil {
		return err
	}

	if err = uow.GatePassRepository().Add(ctx, pass); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
