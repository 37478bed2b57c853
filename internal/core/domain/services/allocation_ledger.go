package services

import (
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LedgerLeg names one bank transaction to draw from.
type LedgerLeg struct {
	TransactionID kernel.UUID
	// Transaction is nil when the caller could not find TransactionID.
	Transaction *payment.BankTransaction
	// Drawn is what earlier allocations already took from the transaction.
	Drawn decimal.Decimal
	// Amount caps what is drawn from the leg; zero draws the whole remaining
	// capacity. It never changes which transactions may be combined.
	Amount decimal.Decimal
}

// LinkInput is the state the single request path works on. Everything in it
// must have been read inside the unit of work that persists the result.
type LinkInput struct {
	Request *payment.Request
	// Allocated is the sum of the existing allocations of Request.
	Allocated decimal.Decimal
	// PriorDates are the dates of the transactions already linked to Request.
	PriorDates []time.Time
	Legs       []LedgerLeg
	At         time.Time
}

// LinkResult carries the allocations to insert. Request is mutated in place
// when it completes.
type LinkResult struct {
	Allocations    []*payment.Allocation
	TotalAllocated decimal.Decimal
	Completed      bool
}

// BatchEntry is one request of a batch.
type BatchEntry struct {
	Request     *payment.Request
	Allocated   decimal.Decimal
	PriorDates  []time.Time
	PODAttached bool
	Subject     string
}

// BatchInput is the state the batch path works on.
type BatchInput struct {
	Entries []BatchEntry
	Legs    []LedgerLeg
	At      time.Time
}

// BatchResult carries the allocations to insert; every request of the batch is completed.
type BatchResult struct {
	Allocations []*payment.Allocation
	Completed   []*payment.Request
}

// AllocationLedger matches bank transaction funds to payment requests.
//
// Business rules:
//   - a completed request accepts no further allocation
//   - every transaction must exist and pay the request's beneficiary
//   - a transaction with no capacity left cannot be linked
//   - a single transaction may over-cover the request; the surplus stays on the transaction
//   - with several transactions, no transaction's remaining capacity alone and not all of them
//     together may exceed the outstanding amount, whatever amounts the caller asks to draw
//   - a request completes when its allocations reach the requested amount; the
//     payment date is the latest date among all transactions linked to it
//
// Example usage:
//
//	ledger := services.NewAllocationLedger()
//	res, err := ledger.LinkTransactions(services.LinkInput{Request: req, Legs: legs, At: now})
//	if err != nil {
//	    return err
//	}
//	if err = allocRepo.Add(ctx, res.Allocations...); err != nil {
//	    return err
//	}
type AllocationLedger struct{}

func NewAllocationLedger() AllocationLedger {
	return AllocationLedger{}
}

// LinkTransactions plans the allocations of legs to one request.
func (l AllocationLedger) LinkTransactions(in LinkInput) (LinkResult, error) {
	req := in.Request
	if err := req.Validate(); err != nil {
		return LinkResult{}, err
	}
	if err := req.EnsurePending(); err != nil {
		return LinkResult{}, err
	}

	funds, err := l.funds(in.Legs, req.BeneficiaryID())
	if err != nil {
		return LinkResult{}, err
	}

	remaining := req.Outstanding(in.Allocated)
	if !remaining.IsPositive() {
		return LinkResult{}, errs.NewLedgerError(errs.ErrAllocationExceedsRequest, req.ID().String(), "nothing outstanding")
	}

	if len(in.Legs) > 1 {
		total := decimal.Zero
		for i, f := range funds {
			if f.capacity.GreaterThan(remaining) {
				return LinkResult{}, errs.NewLedgerError(errs.ErrAllocationExceedsRequest, req.ID().String(),
					fmt.Sprintf("transaction %s offers %s, %s outstanding", in.Legs[i].TransactionID, f.capacity, remaining))
			}
			total = total.Add(f.capacity)
		}
		if total.GreaterThan(remaining) {
			return LinkResult{}, errs.NewLedgerError(errs.ErrAllocationExceedsRequest, req.ID().String(),
				fmt.Sprintf("%s > %s", total, remaining))
		}
	}

	result := LinkResult{Allocations: make([]*payment.Allocation, 0, len(in.Legs))}
	dates := append([]time.Time(nil), in.PriorDates...)
	left := remaining
	for i, leg := range in.Legs {
		amount := decimal.Min(funds[i].draw, left)
		if !amount.IsPositive() {
			break
		}
		alloc, err := payment.NewAllocation(kernel.NewUUID(), req.TenantID(), req.ID(), leg.TransactionID, amount, in.At)
		if err != nil {
			return LinkResult{}, err
		}
		result.Allocations = append(result.Allocations, alloc)
		dates = append(dates, leg.Transaction.TransactionDate())
		left = left.Sub(amount)
	}

	result.TotalAllocated = in.Allocated.Add(payment.SumAllocated(result.Allocations))
	if result.TotalAllocated.GreaterThanOrEqual(req.RequestedAmount()) {
		if err = req.Complete(latest(dates)); err != nil {
			return LinkResult{}, err
		}
		result.Completed = true
	}

	return result, nil
}

// CompleteBatch funds several requests of one beneficiary from one set of
// transactions. The legs must cover the outstanding amounts exactly and every
// request completes; nothing is planned when any check fails.
func (l AllocationLedger) CompleteBatch(in BatchInput) (BatchResult, error) {
	if len(in.Entries) == 0 {
		return BatchResult{}, errs.NewValueIsRequiredError("paymentRequestIds")
	}

	beneficiary := ""
	seen := make(map[kernel.UUID]struct{}, len(in.Entries))
	outstanding := make([]decimal.Decimal, len(in.Entries))
	totalOutstanding := decimal.Zero

	for i, e := range in.Entries {
		if err := e.Request.Validate(); err != nil {
			return BatchResult{}, err
		}
		if _, dup := seen[e.Request.ID()]; dup {
			return BatchResult{}, errs.NewValueIsInvalidErrorWithCause("paymentRequestIds",
				fmt.Errorf("request %s listed twice", e.Request.ID()))
		}
		seen[e.Request.ID()] = struct{}{}

		if err := e.Request.EnsurePending(); err != nil {
			return BatchResult{}, err
		}
		if i == 0 {
			beneficiary = e.Request.BeneficiaryID()
		} else if e.Request.BeneficiaryID() != beneficiary {
			return BatchResult{}, errs.NewLedgerError(errs.ErrBeneficiaryMismatch, e.Request.ID().String(),
				fmt.Sprintf("%s != %s", e.Request.BeneficiaryID(), beneficiary))
		}

		outstanding[i] = e.Request.Outstanding(e.Allocated)
		totalOutstanding = totalOutstanding.Add(outstanding[i])
	}

	for _, e := range in.Entries {
		if e.Request.TransactionType().SettlesTrip() && !e.PODAttached {
			return BatchResult{}, errs.NewPreconditionNotMetError("POD document", e.Subject)
		}
	}

	funds, err := l.funds(in.Legs, beneficiary)
	if err != nil {
		return BatchResult{}, err
	}

	draws := make([]decimal.Decimal, len(funds))
	for i, f := range funds {
		draws[i] = f.draw
	}
	offered := kernel.SumAmounts(draws...)
	switch {
	case offered.GreaterThan(totalOutstanding):
		return BatchResult{}, errs.NewLedgerError(errs.ErrAllocationExceedsRequest, "batch",
			fmt.Sprintf("%s > %s", offered, totalOutstanding))
	case offered.LessThan(totalOutstanding):
		return BatchResult{}, errs.NewLedgerError(errs.ErrBatchUnderfunded, "batch",
			fmt.Sprintf("%s < %s", offered, totalOutstanding))
	}

	result := BatchResult{
		Allocations: make([]*payment.Allocation, 0, len(in.Entries)+len(in.Legs)),
		Completed:   make([]*payment.Request, 0, len(in.Entries)),
	}

	leg := 0
	legLeft := decimal.Zero
	if len(draws) > 0 {
		legLeft = draws[0]
	}

	for i, e := range in.Entries {
		dates := append([]time.Time(nil), e.PriorDates...)
		need := outstanding[i]

		for need.IsPositive() && leg < len(in.Legs) {
			amount := decimal.Min(need, legLeft)
			if amount.IsPositive() {
				alloc, err := payment.NewAllocation(kernel.NewUUID(), e.Request.TenantID(), e.Request.ID(),
					in.Legs[leg].TransactionID, amount, in.At)
				if err != nil {
					return BatchResult{}, err
				}
				result.Allocations = append(result.Allocations, alloc)
				dates = append(dates, in.Legs[leg].Transaction.TransactionDate())
				need = need.Sub(amount)
				legLeft = legLeft.Sub(amount)
			}
			if !legLeft.IsPositive() {
				leg++
				if leg < len(draws) {
					legLeft = draws[leg]
				}
			}
		}

		if len(dates) == 0 {
			dates = legDates(in.Legs)
		}
		if err := e.Request.Complete(latest(dates)); err != nil {
			return BatchResult{}, err
		}
		result.Completed = append(result.Completed, e.Request)
	}

	return result, nil
}

// legFunds is what a leg's transaction still holds and what may be drawn from it.
type legFunds struct {
	capacity decimal.Decimal
	draw     decimal.Decimal
}

// funds validates the legs and returns the capacity and the draw of each one.
func (l AllocationLedger) funds(legs []LedgerLeg, beneficiary string) ([]legFunds, error) {
	if len(legs) == 0 {
		return nil, errs.NewValueIsRequiredError("transactions")
	}

	seen := make(map[kernel.UUID]struct{}, len(legs))
	funds := make([]legFunds, 0, len(legs))

	for _, leg := range legs {
		ref := leg.TransactionID.String()
		if _, dup := seen[leg.TransactionID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("transactions", fmt.Errorf("transaction %s listed twice", ref))
		}
		seen[leg.TransactionID] = struct{}{}

		if leg.Transaction == nil {
			return nil, errs.NewLedgerError(errs.ErrTransactionNotFound, ref, "")
		}
		if leg.Transaction.BeneficiaryID() != beneficiary {
			return nil, errs.NewLedgerError(errs.ErrBeneficiaryMismatch, ref,
				fmt.Sprintf("%s != %s", leg.Transaction.BeneficiaryID(), beneficiary))
		}
		if leg.Amount.IsNegative() {
			return nil, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", leg.Amount))
		}

		capacity := leg.Transaction.Remaining(leg.Drawn)
		if !capacity.IsPositive() {
			return nil, errs.NewLedgerError(errs.ErrTransactionExhausted, ref, "")
		}
		draw := capacity
		if leg.Amount.IsPositive() {
			if leg.Amount.GreaterThan(capacity) {
				return nil, errs.NewLedgerError(errs.ErrTransactionExhausted, ref,
					fmt.Sprintf("%s requested, %s left", leg.Amount, capacity))
			}
			draw = leg.Amount
		}

		funds = append(funds, legFunds{capacity: capacity, draw: draw})
	}

	return funds, nil
}

func legDates(legs []LedgerLeg) []time.Time {
	dates := make([]time.Time, 0, len(legs))
	for _, leg := range legs {
		dates = append(dates, leg.Transaction.TransactionDate())
	}
	return dates
}

func latest(dates []time.Time) time.Time {
	var last time.Time
	for _, d := range dates {
		if d.After(last) {
			last = d
		}
	}
	return last
}
