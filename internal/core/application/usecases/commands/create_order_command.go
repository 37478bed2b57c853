package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new order. The initial status is derived from
// the eligibility fields unless a status is requested explicitly.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(caller, kernel.NewUUID(), fields, "TRIP-9",
//	    decimal.NewFromInt(52000), order.SourceManual, order.Unknown)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct {
	caller        kernel.Caller
	orderID       kernel.UUID
	fields        order.EligibilityFields
	tripReference string
	freightCost   decimal.Decimal
	source        order.Source
	status        order.Status

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand builds the command. A freight cost sent by a caller
// without financial rights is dropped.
func NewCreateOrderCommand(
	caller kernel.Caller,
	orderID kernel.UUID,
	fields order.EligibilityFields,
	tripReference string,
	freightCost decimal.Decimal,
	source order.Source,
	status order.Status,
) (CreateOrderCommand, error) {
	var sourceErr error
	if !source.IsValid() {
		sourceErr = errs.NewValueIsInvalidError("source")
	}
	if err := errors.Join(caller.Validate(), orderID.Validate(), sourceErr); err != nil {
		return CreateOrderCommand{}, err
	}
	if !caller.CanSetFinancials() {
		freightCost = decimal.Zero
	}

	return CreateOrderCommand{
		caller:        caller,
		orderID:       orderID,
		fields:        fields,
		tripReference: tripReference,
		freightCost:   freightCost,
		source:        source,
		status:        status,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Caller() kernel.Caller { return c.caller }
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) Fields() order.EligibilityFields { return c.fields }
func (c CreateOrderCommand) TripReference() string { return c.tripReference }
func (c CreateOrderCommand) FreightCost() decimal.Decimal { return c.freightCost }
func (c CreateOrderCommand) Source() order.Source { return c.source }

// Status is the requested initial status; order.Unknown lets the fields decide.
func (c CreateOrderCommand) Status() order.Status { return c.status }
