package commands

import (
	"context"

	"logistics/internal/core/domain/model/order"
)

// ChangeOrderAvailabilityCommandHandler freezes and unfreezes orders.
type ChangeOrderAvailabilityCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderAvailabilityCommandHandler(uowFactory OrderUoWFactory) ChangeOrderAvailabilityCommandHandler {
	return ChangeOrderAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the action and returns the resulting status.
func (h ChangeOrderAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderAvailabilityCommand,
) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.Caller().TenantID(), cmd.OrderID())
	if err != nil {
		return order.Unknown, err
	}

	switch cmd.Action() {
	case ActionHold:
		err = o.Hold()
	case ActionDelete:
		err = o.Delete()
	case ActionReactivate:
		err = o.Reactivate()
	case ActionUnknown:
		err = ErrChangeOrderAvailabilityCommandIsNotConstructed
	}
	if err != nil {
		return order.Unknown, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Unknown, err
	}

	return o.Status(), nil
}
