package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"

	"github.com/shopspring/decimal"
)

// LinkTransactionsResult is what the ledger did to the request.
type LinkTransactionsResult struct {
	Allocations    []*payment.Allocation
	TotalAllocated decimal.Decimal
	Completed      bool
	// Completion is set when the request settled the trip and the vehicle was evaluated.
	Completion *services.CompletionDecision
}

type LinkTransactionsCommandHandler struct {
	uowFactory UoWFactory
	documents  ports.DocumentStore
	logger     *slog.Logger
}

func NewLinkTransactionsCommandHandler(
	uowFactory UoWFactory,
	documents ports.DocumentStore,
	logger *slog.Logger,
) LinkTransactionsCommandHandler {
	return LinkTransactionsCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
		logger:     loggerOrDefault(logger),
	}
}

// Handle locks the request and the transactions, plans the allocations and
// persists them. When the request completes and settles the trip the vehicle
// is evaluated for completion in the same transaction.
func (h LinkTransactionsCommandHandler) Handle(
	ctx context.Context,
	cmd LinkTransactionsCommand,
) (LinkTransactionsResult, error) {
	if err := cmd.Validate(); err != nil {
		return LinkTransactionsResult{}, err
	}
	tenantID := cmd.Caller().TenantID()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LinkTransactionsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.PaymentRequestRepository()
	locked, err := requestRepo.GetForUpdate(ctx, tenantID, []kernel.UUID{cmd.RequestID()})
	if err != nil {
		return LinkTransactionsResult{}, err
	}
	req := locked[0]

	legs, err := loadLegs(ctx, uow, tenantID, cmd.Legs())
	if err != nil {
		return LinkTransactionsResult{}, err
	}

	prior, err := loadPriorAllocations(ctx, uow, tenantID, []kernel.UUID{req.ID()})
	if err != nil {
		return LinkTransactionsResult{}, err
	}

	res, err := services.NewAllocationLedger().LinkTransactions(services.LinkInput{
		Request:    req,
		Allocated:  prior.allocated[req.ID()],
		PriorDates: prior.dates[req.ID()],
		Legs:       legs,
		At:         cmd.At(),
	})
	if err != nil {
		return LinkTransactionsResult{}, err
	}

	if err = uow.AllocationRepository().Add(ctx, res.Allocations...); err != nil {
		return LinkTransactionsResult{}, err
	}

	result := LinkTransactionsResult{
		Allocations:    res.Allocations,
		TotalAllocated: res.TotalAllocated,
		Completed:      res.Completed,
	}

	if res.Completed {
		if err = requestRepo.Update(ctx, req); err != nil {
			return LinkTransactionsResult{}, err
		}

		policy := services.NewVehicleCompletionPolicy(services.NewStatusSynchronizer())
		if policy.Triggers(req.TransactionType()) {
			decision, err := completeVehicle(ctx, uow, h.documents, tenantID, req.VehicleID(), cmd.At(), h.logger)
			if err != nil {
				return LinkTransactionsResult{}, err
			}
			result.Completion = &decision
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return LinkTransactionsResult{}, err
	}

	return result, nil
}

// loadLegs locks the named transactions and reads what is already drawn from them.
// Unknown transactions keep a nil Transaction for the ledger to reject.
func loadLegs(ctx context.Context, uow UoW, tenantID kernel.UUID, in []TransactionLeg) ([]services.LedgerLeg, error) {
	ids := legIDs(in)

	txs, err := uow.BankTransactionRepository().GetForUpdate(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	drawn, err := uow.AllocationRepository().SumByTransactions(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	legs := make([]services.LedgerLeg, 0, len(in))
	for _, leg := range in {
		legs = append(legs, services.LedgerLeg{
			TransactionID: leg.TransactionID,
			Transaction:   txs[leg.TransactionID],
			Drawn:         drawn[leg.TransactionID],
			Amount:        leg.Amount,
		})
	}

	return legs, nil
}

type priorAllocations struct {
	allocated map[kernel.UUID]decimal.Decimal
	dates     map[kernel.UUID][]time.Time
}

// loadPriorAllocations sums the existing allocations per request and collects
// the dates of the transactions behind them.
func loadPriorAllocations(ctx context.Context, uow UoW, tenantID kernel.UUID, requestIDs []kernel.UUID) (priorAllocations, error) {
	prior := priorAllocations{
		allocated: make(map[kernel.UUID]decimal.Decimal, len(requestIDs)),
		dates:     make(map[kernel.UUID][]time.Time, len(requestIDs)),
	}

	allocs, err := uow.AllocationRepository().ListByRequests(ctx, tenantID, requestIDs)
	if err != nil {
		return priorAllocations{}, err
	}
	if len(allocs) == 0 {
		return prior, nil
	}

	txIDs := make([]kernel.UUID, 0, len(allocs))
	for _, a := range allocs {
		txIDs = append(txIDs, a.TransactionID())
	}
	txs, err := uow.BankTransactionRepository().GetMany(ctx, tenantID, txIDs)
	if err != nil {
		return priorAllocations{}, err
	}

	for _, a := range allocs {
		prior.allocated[a.RequestID()] = prior.allocated[a.RequestID()].Add(a.Amount())
		if tx, ok := txs[a.TransactionID()]; ok {
			prior.dates[a.RequestID()] = append(prior.dates[a.RequestID()], tx.TransactionDate())
		}
	}

	return prior, nil
}
