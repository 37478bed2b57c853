package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"

	"github.com/shopspring/decimal"
)

// PaymentRequestRepository defines the persistence contract for payment requests.
type PaymentRequestRepository interface {
	Add(ctx context.Context, aggregate *payment.Request) error
	Update(ctx context.Context, aggregate *payment.Request) error
	Get(ctx context.Context, tenantID, id kernel.UUID) (*payment.Request, error)

	// GetForUpdate reads the requests and locks their rows until the transaction
	// ends, so concurrent allocations against one request are serialized.
	GetForUpdate(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*payment.Request, error)

	// ListByVehicle returns every request raised against the vehicle.
	ListByVehicle(ctx context.Context, tenantID, vehicleID kernel.UUID) ([]*payment.Request, error)
}

// BankTransactionRepository defines the persistence contract for bank transactions.
type BankTransactionRepository interface {
	// Add persists a new transaction. The code must be unique within the tenant.
	Add(ctx context.Context, aggregate *payment.BankTransaction) error

	Get(ctx context.Context, tenantID, id kernel.UUID) (*payment.BankTransaction, error)

	// GetForUpdate locks and returns the transactions found among ids, keyed by id.
	// Missing identifiers are absent from the map rather than an error.
	GetForUpdate(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) (map[kernel.UUID]*payment.BankTransaction, error)

	// GetMany returns the transactions found among ids, keyed by id.
	GetMany(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) (map[kernel.UUID]*payment.BankTransaction, error)
}

// AllocationRepository defines the persistence contract for the append-only ledger entries.
type AllocationRepository interface {
	Add(ctx context.Context, allocations ...*payment.Allocation) error

	// ListByRequests returns the allocations of the given requests.
	ListByRequests(ctx context.Context, tenantID kernel.UUID, requestIDs []kernel.UUID) ([]*payment.Allocation, error)

	// SumByTransactions returns what has been drawn from each transaction; absent ids drew nothing.
	SumByTransactions(ctx context.Context, tenantID kernel.UUID, transactionIDs []kernel.UUID) (map[kernel.UUID]decimal.Decimal, error)
}
