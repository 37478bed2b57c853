package payment

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")

// Allocation assigns part of one bank transaction to one request. It is immutable.
type Allocation struct {
	id            kernel.UUID
	tenantID      kernel.UUID
	requestID     kernel.UUID
	transactionID kernel.UUID
	amount        decimal.Decimal
	createdAt     time.Time

	guard guard.ConstructorGuard
}

func NewAllocation(id, tenantID, requestID, transactionID kernel.UUID, amount decimal.Decimal, createdAt time.Time) (*Allocation, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		requestID.Validate(),
		transactionID.Validate(),
		kernel.ValidatePositiveAmount("allocatedAmount", amount),
	); err != nil {
		return nil, err
	}

	return &Allocation{
		id:            id,
		tenantID:      tenantID,
		requestID:     requestID,
		transactionID: transactionID,
		amount:        amount,
		createdAt:     createdAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (a *Allocation) Validate() error {
	if a == nil {
		return ErrAllocationIsNotConstructed
	}
	return a.guard.Validate(ErrAllocationIsNotConstructed)
}

func (a *Allocation) ID() kernel.UUID { return a.id }
func (a *Allocation) TenantID() kernel.UUID { return a.tenantID }
func (a *Allocation) RequestID() kernel.UUID { return a.requestID }
func (a *Allocation) TransactionID() kernel.UUID { return a.transactionID }
func (a *Allocation) Amount() decimal.Decimal { return a.amount }
func (a *Allocation) CreatedAt() time.Time { return a.createdAt }

// SumAllocated adds up the amounts of allocs.
func SumAllocated(allocs []*Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.amount)
	}
	return total
}
