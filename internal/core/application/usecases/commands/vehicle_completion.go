package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// completeVehicle runs the completion policy for one vehicle inside uow. Requests
// completed earlier in the same transaction must already be persisted. A
// vehicle that refuses COMPLETED is logged and left for the reconciliation job.
func completeVehicle(
	ctx context.Context,
	uow UoW,
	documents ports.DocumentStore,
	tenantID, vehicleID kernel.UUID,
	at time.Time,
	logger *slog.Logger,
) (services.CompletionDecision, error) {
	vehicleRepo := uow.VehicleRepository()
	v, err := vehicleRepo.GetForUpdate(ctx, tenantID, vehicleID)
	if err != nil {
		return services.CompletionDecision{}, err
	}

	requests, err := uow.PaymentRequestRepository().ListByVehicle(ctx, tenantID, vehicleID)
	if err != nil {
		return services.CompletionDecision{}, err
	}

	pod, err := documents.DocumentExists(ctx, tenantID, vehicleID, ports.DocumentPOD)
	if err != nil {
		return services.CompletionDecision{}, err
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.ListByVehicle(ctx, tenantID, vehicleID)
	if err != nil {
		return services.CompletionDecision{}, err
	}

	policy := services.NewVehicleCompletionPolicy(services.NewStatusSynchronizer())
	decision := policy.Evaluate(v, requests, pod, orders, at)

	//nolint:exhaustive // the awaiting outcomes change nothing
	switch decision.Outcome {
	case services.CompletionAdvanced:
		if err = vehicleRepo.Update(ctx, v); err != nil {
			return services.CompletionDecision{}, err
		}
		if err = persistSync(ctx, orderRepo, decision.Sync, orders); err != nil {
			return services.CompletionDecision{}, err
		}
		logSkipped(logger, v, decision.Sync)
	case services.CompletionBlocked:
		logger.Warn("vehicle not completed",
			"vehicle_id", v.ID().String(),
			"vehicle_status", v.Status().String(),
			"error", decision.Err,
		)
	}

	return decision, nil
}
