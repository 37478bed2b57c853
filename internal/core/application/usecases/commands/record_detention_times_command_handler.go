package commands

import (
	"context"
)

// RecordDetentionTimesCommandHandler stores the reached and unloaded times of a vehicle.
type RecordDetentionTimesCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewRecordDetentionTimesCommandHandler(uowFactory FleetUoWFactory) RecordDetentionTimesCommandHandler {
	return RecordDetentionTimesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records reachedAt before unloadedAt so both can arrive in one call.
func (h RecordDetentionTimesCommandHandler) Handle(ctx context.Context, cmd RecordDetentionTimesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vehicleRepo := uow.VehicleRepository()
	v, err := vehicleRepo.GetForUpdate(ctx, cmd.Caller().TenantID(), cmd.VehicleID())
	if err != nil {
		return err
	}

	if at := cmd.ReachedAt(); at != nil {
		if err = v.RecordReached(*at); err != nil {
			return err
		}
	}
	if at := cmd.UnloadedAt(); at != nil {
		if err = v.RecordUnloaded(*at); err != nil {
			return err
		}
	}

	if err = vehicleRepo.Update(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
