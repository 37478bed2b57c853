package commands

import (
	"context"
)

// TransitionOrderStatusCommandHandler validates and applies explicit order transitions.
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h TransitionOrderStatusCommandHandler) Handle(ctx context.Context, cmd TransitionOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.Caller().TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status() == cmd.Status() {
		return nil
	}

	if err = o.TransitionTo(cmd.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
