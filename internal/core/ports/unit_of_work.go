package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle; repositories returned
// after Begin run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	VehicleRepository() VehicleRepository
	GatePassRepository() GatePassRepository
	PaymentRequestRepository() PaymentRequestRepository
	BankTransactionRepository() BankTransactionRepository
	AllocationRepository() AllocationRepository
}
