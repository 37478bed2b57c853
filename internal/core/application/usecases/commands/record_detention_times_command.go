package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRecordDetentionTimesCommandIsNotConstructed = errors.New(
	"RecordDetentionTimesCommand must be created via NewRecordDetentionTimesCommand constructor",
)

// RecordDetentionTimesCommand stamps when a vehicle reached its destination
// and when unloading finished. Detention charges are raised against this window.
type RecordDetentionTimesCommand struct {
	caller     kernel.Caller
	vehicleID  kernel.UUID
	reachedAt  *time.Time
	unloadedAt *time.Time

	guard guard.ConstructorGuard
}

func NewRecordDetentionTimesCommand(
	caller kernel.Caller,
	vehicleID kernel.UUID,
	reachedAt, unloadedAt *time.Time,
) (RecordDetentionTimesCommand, error) {
	if err := errors.Join(caller.Validate(), vehicleID.Validate()); err != nil {
		return RecordDetentionTimesCommand{}, err
	}
	if reachedAt == nil && unloadedAt == nil {
		return RecordDetentionTimesCommand{}, errs.NewValueIsRequiredError("reachedAt or unloadedAt")
	}

	return RecordDetentionTimesCommand{
		caller:     caller,
		vehicleID:  vehicleID,
		reachedAt:  reachedAt,
		unloadedAt: unloadedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordDetentionTimesCommand) Validate() error {
	return c.guard.Validate(ErrRecordDetentionTimesCommandIsNotConstructed)
}

func (c RecordDetentionTimesCommand) Caller() kernel.Caller { return c.caller }
func (c RecordDetentionTimesCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c RecordDetentionTimesCommand) ReachedAt() *time.Time { return c.reachedAt }
func (c RecordDetentionTimesCommand) UnloadedAt() *time.Time { return c.unloadedAt }
