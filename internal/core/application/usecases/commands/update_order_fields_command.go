package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrUpdateOrderFieldsCommandIsNotConstructed = errors.New(
	"UpdateOrderFieldsCommand must be created via NewUpdateOrderFieldsCommand constructor",
)

// UpdateOrderFieldsCommand applies a partial update to an order. The status is
// never part of the payload; it follows from the fields.
type UpdateOrderFieldsCommand struct {
	caller  kernel.Caller
	orderID kernel.UUID
	patch   order.Patch
	source  order.Source

	guard guard.ConstructorGuard
}

// NewUpdateOrderFieldsCommand builds the command, dropping financial fields the
// caller may not set.
func NewUpdateOrderFieldsCommand(
	caller kernel.Caller,
	orderID kernel.UUID,
	patch order.Patch,
	source order.Source,
) (UpdateOrderFieldsCommand, error) {
	var sourceErr error
	if !source.IsValid() {
		sourceErr = errs.NewValueIsInvalidError("source")
	}
	if err := errors.Join(caller.Validate(), orderID.Validate(), sourceErr); err != nil {
		return UpdateOrderFieldsCommand{}, err
	}
	if !caller.CanSetFinancials() {
		patch = patch.WithoutFinancials()
	}

	return UpdateOrderFieldsCommand{
		caller:  caller,
		orderID: orderID,
		patch:   patch,
		source:  source,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderFieldsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderFieldsCommandIsNotConstructed)
}

func (c UpdateOrderFieldsCommand) Caller() kernel.Caller { return c.caller }
func (c UpdateOrderFieldsCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateOrderFieldsCommand) Patch() order.Patch { return c.patch }
func (c UpdateOrderFieldsCommand) Source() order.Source { return c.source }
