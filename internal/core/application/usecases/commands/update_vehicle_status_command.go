package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateVehicleStatusCommandIsNotConstructed = errors.New(
	"UpdateVehicleStatusCommand must be created via NewUpdateVehicleStatusCommand constructor",
)

// UpdateVehicleStatusCommand moves a vehicle forward. A loading quantity may
// travel with the transition that needs it.
type UpdateVehicleStatusCommand struct {
	caller          kernel.Caller
	vehicleID       kernel.UUID
	status          vehicle.Status
	loadingQuantity *decimal.Decimal
	at              time.Time

	guard guard.ConstructorGuard
}

func NewUpdateVehicleStatusCommand(
	caller kernel.Caller,
	vehicleID kernel.UUID,
	status vehicle.Status,
	loadingQuantity *decimal.Decimal,
	at time.Time,
) (UpdateVehicleStatusCommand, error) {
	var qtyErr error
	if loadingQuantity != nil {
		qtyErr = kernel.ValidatePositiveAmount("loadingQuantity", *loadingQuantity)
	}
	if err := errors.Join(caller.Validate(), vehicleID.Validate(), status.Validate(), qtyErr); err != nil {
		return UpdateVehicleStatusCommand{}, err
	}

	return UpdateVehicleStatusCommand{
		caller:          caller,
		vehicleID:       vehicleID,
		status:          status,
		loadingQuantity: loadingQuantity,
		at:              at.UTC(),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateVehicleStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVehicleStatusCommandIsNotConstructed)
}

func (c UpdateVehicleStatusCommand) Caller() kernel.Caller { return c.caller }
func (c UpdateVehicleStatusCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c UpdateVehicleStatusCommand) Status() vehicle.Status { return c.status }
func (c UpdateVehicleStatusCommand) LoadingQuantity() *decimal.Decimal { return c.loadingQuantity }
func (c UpdateVehicleStatusCommand) At() time.Time { return c.at }
