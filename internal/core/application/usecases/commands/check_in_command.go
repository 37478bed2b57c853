package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCheckInCommandIsNotConstructed = errors.New(
	"CheckInCommand must be created via NewCheckInCommand constructor",
)

// CheckInCommand opens a gate pass for a vehicle, an order, or both.
type CheckInCommand struct {
	caller     kernel.Caller
	gatePassID kernel.UUID
	vehicleID  *kernel.UUID
	orderID    *kernel.UUID
	at         time.Time

	guard guard.ConstructorGuard
}

func NewCheckInCommand(
	caller kernel.Caller,
	gatePassID kernel.UUID,
	vehicleID, orderID *kernel.UUID,
	at time.Time,
) (CheckInCommand, error) {
	var subjectErr error
	if vehicleID == nil && orderID == nil {
		subjectErr = errs.NewValueIsRequiredError("vehicleId or orderId")
	}
	if err := errors.Join(caller.Validate(), gatePassID.Validate(), subjectErr); err != nil {
		return CheckInCommand{}, err
	}

	return CheckInCommand{
		caller:     caller,
		gatePassID: gatePassID,
		vehicleID:  vehicleID,
		orderID:    orderID,
		at:         at.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CheckInCommand) Validate() error {
	return c.guard.Validate(ErrCheckInCommandIsNotConstructed)
}

func (c CheckInCommand) Caller() kernel.Caller { return c.caller }
func (c CheckInCommand) GatePassID() kernel.UUID { return c.gatePassID }
func (c CheckInCommand) VehicleID() *kernel.UUID { return c.vehicleID }
func (c CheckInCommand) OrderID() *kernel.UUID { return c.orderID }
func (c CheckInCommand) At() time.Time { return c.at }
