package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

type ReconcileVehicleCompletionCommandHandler struct {
	uowFactory UoWFactory
	documents  ports.DocumentStore
	logger     *slog.Logger
}

func NewReconcileVehicleCompletionCommandHandler(
	uowFactory UoWFactory,
	documents ports.DocumentStore,
	logger *slog.Logger,
) ReconcileVehicleCompletionCommandHandler {
	return ReconcileVehicleCompletionCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
		logger:     loggerOrDefault(logger),
	}
}

func (h ReconcileVehicleCompletionCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileVehicleCompletionCommand,
) (services.CompletionDecision, error) {
	if err := cmd.Validate(); err != nil {
		return services.CompletionDecision{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.CompletionDecision{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	decision, err := completeVehicle(ctx, uow, h.documents, cmd.TenantID(), cmd.VehicleID(), cmd.At(), h.logger)
	if err != nil {
		return services.CompletionDecision{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.CompletionDecision{}, err
	}

	return decision, nil
}
