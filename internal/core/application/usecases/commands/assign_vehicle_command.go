package commands

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAssignVehicleCommandIsNotConstructed = errors.New(
	"AssignVehicleCommand must be created via NewAssignVehicleCommand constructor",
)

// AssignVehicleCommand puts orders on a vehicle. The vehicle is looked up by
// its registration number and created with vehicleID when it does not exist.
//
// Example:
//
//	cmd, err := NewAssignVehicleCommand(caller, kernel.NewUUID(), "MH 12 AB 1234",
//	    []kernel.UUID{orderA, orderB}, time.Now())
//	if err != nil {
//	    return err
//	}
//	assigned, err := handler.Handle(ctx, cmd)
type AssignVehicleCommand struct {
	caller    kernel.Caller
	vehicleID kernel.UUID
	number    string
	orderIDs  []kernel.UUID
	at        time.Time

	guard guard.ConstructorGuard
}

func NewAssignVehicleCommand(
	caller kernel.Caller,
	vehicleID kernel.UUID,
	number string,
	orderIDs []kernel.UUID,
	at time.Time,
) (AssignVehicleCommand, error) {
	var numberErr, ordersErr error
	if strings.TrimSpace(number) == "" {
		numberErr = vehicle.ErrNumberIsRequired
	}
	if len(orderIDs) == 0 {
		ordersErr = errs.NewValueIsRequiredError("orderIds")
	}
	idErrs := make([]error, 0, len(orderIDs))
	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	unique := make([]kernel.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		idErrs = append(idErrs, id.Validate())
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if err := errors.Join(caller.Validate(), vehicleID.Validate(), numberErr, ordersErr, errors.Join(idErrs...)); err != nil {
		return AssignVehicleCommand{}, err
	}

	return AssignVehicleCommand{
		caller:    caller,
		vehicleID: vehicleID,
		number:    number,
		orderIDs:  unique,
		at:        at.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAssignVehicleCommandIsNotConstructed)
}

func (c AssignVehicleCommand) Caller() kernel.Caller { return c.caller }
func (c AssignVehicleCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c AssignVehicleCommand) Number() string { return c.number }
func (c AssignVehicleCommand) OrderIDs() []kernel.UUID { return append([]kernel.UUID(nil), c.orderIDs...) }
func (c AssignVehicleCommand) At() time.Time { return c.at }
