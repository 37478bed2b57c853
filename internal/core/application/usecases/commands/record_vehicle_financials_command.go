package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordVehicleFinancialsCommandIsNotConstructed = errors.New(
	"RecordVehicleFinancialsCommand must be created via NewRecordVehicleFinancialsCommand constructor",
)

// RecordVehicleFinancialsCommand sets the agreed amount and the expense of a
// vehicle. Only roles with financial rights may build it.
type RecordVehicleFinancialsCommand struct {
	caller    kernel.Caller
	vehicleID kernel.UUID
	amount    *decimal.Decimal
	expense   *decimal.Decimal

	guard guard.ConstructorGuard
}

func NewRecordVehicleFinancialsCommand(
	caller kernel.Caller,
	vehicleID kernel.UUID,
	amount, expense *decimal.Decimal,
) (RecordVehicleFinancialsCommand, error) {
	if err := errors.Join(caller.Validate(), vehicleID.Validate()); err != nil {
		return RecordVehicleFinancialsCommand{}, err
	}
	if !caller.CanSetFinancials() {
		return RecordVehicleFinancialsCommand{}, errs.NewForbiddenError("set vehicle financials", caller.Role().String())
	}
	if amount == nil && expense == nil {
		return RecordVehicleFinancialsCommand{}, errs.NewValueIsRequiredError("amount or expense")
	}

	return RecordVehicleFinancialsCommand{
		caller:    caller,
		vehicleID: vehicleID,
		amount:    amount,
		expense:   expense,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordVehicleFinancialsCommand) Validate() error {
	return c.guard.Validate(ErrRecordVehicleFinancialsCommandIsNotConstructed)
}

func (c RecordVehicleFinancialsCommand) Caller() kernel.Caller { return c.caller }
func (c RecordVehicleFinancialsCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c RecordVehicleFinancialsCommand) Amount() *decimal.Decimal { return c.amount }
func (c RecordVehicleFinancialsCommand) Expense() *decimal.Decimal { return c.expense }
