package payment

import (
	"fmt"
	"time"

	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// unloadingChargePerUnit caps the unloading charge per unit of loaded quantity.
var unloadingChargePerUnit = decimal.NewFromInt(3)

// CreationContext is what a new request is checked against.
type CreationContext struct {
	Type   TransactionType
	Amount decimal.Decimal

	VehicleAmount   decimal.Decimal
	LoadingQuantity decimal.Decimal

	// ExistingShipping are the requests of the vehicle already raised with a shipping charge type.
	ExistingShipping []*Request

	ReachedAt  *time.Time
	UnloadedAt *time.Time

	PODAttached bool
	Subject     string
}

// CheckCeilings enforces the per-type rules for raising a request:
//   - advance must stay below the vehicle amount
//   - advance, balance and full shipping together must not exceed the vehicle amount
//   - the unloading charge must not exceed three times the loading quantity
//   - detention needs reached and unloaded times in that order
//   - balance and full shipping need a proof of delivery
func CheckCeilings(c CreationContext) error {
	if c.Type.SettlesTrip() && !c.PODAttached {
		return errs.NewPreconditionNotMetError("POD document", c.Subject)
	}

	//nolint:exhaustive // remaining types have no ceiling
	switch c.Type {
	case TypeAdvanceShipping:
		if c.Amount.GreaterThanOrEqual(c.VehicleAmount) {
			return errs.NewValueIsOutOfRangeErrorWithCause("requestedAmount", c.Amount, decimal.Zero, c.VehicleAmount,
				fmt.Errorf("advance must be lower than the vehicle amount"))
		}
	case TypeUnloadingCharge:
		ceiling := c.LoadingQuantity.Mul(unloadingChargePerUnit)
		if c.Amount.GreaterThan(ceiling) {
			return errs.NewValueIsOutOfRangeError("requestedAmount", c.Amount, decimal.Zero, ceiling)
		}
	case TypeUnloadingDetention:
		if c.ReachedAt == nil || c.UnloadedAt == nil {
			return errs.NewPreconditionNotMetError("reached and unloaded times", c.Subject)
		}
		if !c.UnloadedAt.After(*c.ReachedAt) {
			return errs.NewValueIsInvalidErrorWithCause("unloadedAt", fmt.Errorf("unloaded at %s is not after reached at %s",
				c.UnloadedAt.Format(time.RFC3339), c.ReachedAt.Format(time.RFC3339)))
		}
	}

	if c.Type.IsShippingCharge() {
		total := c.Amount
		for _, r := range c.ExistingShipping {
			if r.TransactionType().IsShippingCharge() {
				total = total.Add(r.RequestedAmount())
			}
		}
		if total.GreaterThan(c.VehicleAmount) {
			return errs.NewValueIsOutOfRangeErrorWithCause("requestedAmount", total, decimal.Zero, c.VehicleAmount,
				fmt.Errorf("shipping requests exceed the vehicle amount"))
		}
	}

	return nil
}
