package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand moves an order forward explicitly.
type TransitionOrderStatusCommand struct {
	caller  kernel.Caller
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewTransitionOrderStatusCommand(
	caller kernel.Caller,
	orderID kernel.UUID,
	status order.Status,
) (TransitionOrderStatusCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return TransitionOrderStatusCommand{
		caller:  caller,
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) Caller() kernel.Caller { return c.caller }
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderStatusCommand) Status() order.Status { return c.status }
