// Package commands contains the operations that change engine state.
// Every handler follows one pattern: validate the command, open a unit of work,
// load the aggregates, let the domain decide, persist, commit.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces give each handler exactly the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// VehicleRepoFactory provides access to vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// GatePassRepoFactory provides access to gate pass repository within a transaction.
	GatePassRepoFactory interface {
		GatePassRepository() ports.GatePassRepository
	}

	// LedgerRepoFactory provides access to the payment repositories within a transaction.
	LedgerRepoFactory interface {
		PaymentRequestRepository() ports.PaymentRequestRepository
		BankTransactionRepository() ports.BankTransactionRepository
		AllocationRepository() ports.AllocationRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// FleetUoW manages transactions that move vehicles and the orders they carry.
	FleetUoW interface {
		TxManager
		OrderRepoFactory
		VehicleRepoFactory
	}

	// FleetUoWFactory creates new fleet unit of work instances.
	FleetUoWFactory interface {
		Create() FleetUoW
	}

	// GateUoW manages transactions at the gate: passes, vehicles and orders.
	GateUoW interface {
		TxManager
		OrderRepoFactory
		VehicleRepoFactory
		GatePassRepoFactory
	}

	// GateUoWFactory creates new gate unit of work instances.
	GateUoWFactory interface {
		Create() GateUoW
	}

	// UoW spans the ledger and the vehicles it can complete.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   requests, err := uow.PaymentRequestRepository().GetForUpdate(ctx, tenantID, ids)
	//   // ... allocate, complete, sync the vehicle
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		VehicleRepoFactory
		LedgerRepoFactory
	}

	// UoWFactory creates new unit of work instances for ledger operations.
	UoWFactory interface {
		Create() UoW
	}
)
