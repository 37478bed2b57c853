package commands

import (
	"context"

	"logistics/internal/core/domain/model/order"
)

// UpdateOrderFieldsCommandHandler applies provenance-aware partial updates.
type UpdateOrderFieldsCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderFieldsCommandHandler(uowFactory OrderUoWFactory) UpdateOrderFieldsCommandHandler {
	return UpdateOrderFieldsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle writes the allowed fields and reports which were kept because a
// higher precedence source wrote them. An empty patch changes nothing.
func (h UpdateOrderFieldsCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderFieldsCommand,
) (order.PatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return order.PatchResult{}, err
	}
	if cmd.Patch().IsEmpty() {
		return order.PatchResult{}, nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.PatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.Caller().TenantID(), cmd.OrderID())
	if err != nil {
		return order.PatchResult{}, err
	}

	result, err := o.ApplyPatch(cmd.Patch(), cmd.Source())
	if err != nil {
		return order.PatchResult{}, err
	}

	if len(result.Applied) == 0 {
		return result, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return order.PatchResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.PatchResult{}, err
	}

	return result, nil
}
