package commands

import (
	"context"

	"logistics/internal/core/domain/model/vehicle"
)

// DiscardGatePassCommandHandler cancels or deletes gate passes.
type DiscardGatePassCommandHandler struct {
	uowFactory GateUoWFactory
}

func NewDiscardGatePassCommandHandler(uowFactory GateUoWFactory) DiscardGatePassCommandHandler {
	return DiscardGatePassCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes only a CHECK_IN pass whose vehicle is still ASSIGNED.
// Cancelling never looks at the vehicle.
func (h DiscardGatePassCommandHandler) Handle(ctx context.Context, cmd DiscardGatePassCommand) error {
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

	passRepo := uow.GatePassRepository()
	pass, err := passRepo.Get(ctx, tenantID, cmd.GatePassID())
	if err != nil {
		return err
	}

	if !cmd.IsDelete() {
		if err = pass.Cancel(); err != nil {
			return err
		}
		if err = passRepo.Update(ctx, pass); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	var linked *vehicle.Vehicle
	if id := pass.VehicleID(); id != nil {
		if linked, err = uow.VehicleRepository().Get(ctx, tenantID, *id); err != nil {
			return err
		}
	}

	if err = pass.EnsureDeletable(linked); err != nil {
		return err
	}

	if err = passRepo.Delete(ctx, tenantID, pass.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
