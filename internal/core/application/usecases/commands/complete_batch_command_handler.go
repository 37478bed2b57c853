package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// CompleteBatchResult lists the allocations written and the vehicles evaluated
// for completion, keyed by vehicle.
type CompleteBatchResult struct {
	Allocations []*payment.Allocation
	Completed   []*payment.Request
	Completions map[kernel.UUID]services.CompletionDecision
}

type CompleteBatchCommandHandler struct {
	uowFactory UoWFactory
	documents  ports.DocumentStore
	logger     *slog.Logger
}

func NewCompleteBatchCommandHandler(
	uowFactory UoWFactory,
	documents ports.DocumentStore,
	logger *slog.Logger,
) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
		logger:     loggerOrDefault(logger),
	}
}

// Handle completes every request of the batch or none of them.
func (h CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) (CompleteBatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteBatchResult{}, err
	}
	tenantID := cmd.Caller().TenantID()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteBatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.PaymentRequestRepository()
	requests, err := requestRepo.GetForUpdate(ctx, tenantID, cmd.RequestIDs())
	if err != nil {
		return CompleteBatchResult{}, err
	}

	legs, err := loadLegs(ctx, uow, tenantID, cmd.Legs())
	if err != nil {
		return CompleteBatchResult{}, err
	}

	prior, err := loadPriorAllocations(ctx, uow, tenantID, cmd.RequestIDs())
	if err != nil {
		return CompleteBatchResult{}, err
	}

	vehicleNumbers := make(map[kernel.UUID]string)
	entries := make([]services.BatchEntry, 0, len(requests))
	for _, req := range requests {
		entry := services.BatchEntry{
			Request:    req,
			Allocated:  prior.allocated[req.ID()],
			PriorDates: prior.dates[req.ID()],
			Subject:    "payment request " + req.ID().String(),
		}
		if req.TransactionType().SettlesTrip() {
			if entry.PODAttached, err = h.documents.DocumentExists(ctx, tenantID, req.VehicleID(), ports.DocumentPOD); err != nil {
				return CompleteBatchResult{}, err
			}
			if number, ok := vehicleNumbers[req.VehicleID()]; ok {
				entry.Subject = "vehicle " + number
			} else if v, getErr := uow.VehicleRepository().Get(ctx, tenantID, req.VehicleID()); getErr == nil {
				vehicleNumbers[req.VehicleID()] = v.Number()
				entry.Subject = "vehicle " + v.Number()
			}
		}
		entries = append(entries, entry)
	}

	res, err := services.NewAllocationLedger().CompleteBatch(services.BatchInput{
		Entries: entries,
		Legs:    legs,
		At:      cmd.At(),
	})
	if err != nil {
		return CompleteBatchResult{}, err
	}

	if err = uow.AllocationRepository().Add(ctx, res.Allocations...); err != nil {
		return CompleteBatchResult{}, err
	}
	for _, req := range res.Completed {
		if err = requestRepo.Update(ctx, req); err != nil {
			return CompleteBatchResult{}, err
		}
	}

	result := CompleteBatchResult{
		Allocations: res.Allocations,
		Completed:   res.Completed,
		Completions: make(map[kernel.UUID]services.CompletionDecision),
	}

	policy := services.NewVehicleCompletionPolicy(services.NewStatusSynchronizer())
	for _, req := range res.Completed {
		if !policy.Triggers(req.TransactionType()) {
			continue
		}
		if _, done := result.Completions[req.VehicleID()]; done {
			continue
		}
		decision, err := completeVehicle(ctx, uow, h.documents, tenantID, req.VehicleID(), cmd.At(), h.logger)
		if err != nil {
			return CompleteBatchResult{}, err
		}
		result.Completions[req.VehicleID()] = decision
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteBatchResult{}, err
	}

	return result, nil
}
