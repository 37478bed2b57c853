// Package postgres provides the GORM implementation of the engine's unit of work
// and the schema migration for every repository package below it.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin share that transaction, so a ledger allocation, the completed
// payment requests and the vehicle status change they trigger are committed
// together or not at all.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	requests, err := uow.PaymentRequestRepository().GetForUpdate(ctx, tenantID, ids)
//	if err != nil {
//	    return err
//	}
//	// ... allocate and update
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and is
// safe to ignore, which is what the deferred call above relies on.
//
// Concurrency:
//   - Each UnitOfWork instance owns its transaction; never share one between goroutines
//   - Row locks taken through GetForUpdate are held until Commit or Rollback
package postgres

import (
	"context"

	"logistics/internal/adapters/out/postgres/gatepassrepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/paymentrepo"
	"logistics/internal/adapters/out/postgres/vehiclerepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one *gorm.DB pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create without the interface conversion, for callers that
// need TrackedAggregates.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates its repositories wrote.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []TrackedAggregate
}

// Begin opens the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction's changes permanent and closes it.
// It returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's changes and closes it. Tracked aggregates
// are cleared because none of their writes survived.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository provides access to order persistence operations within the unit of work.
// Repository operations will execute within the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
//
// The returned repository automatically tracks all order aggregates that are
// added or updated, making them available via TrackedAggregates().
//
// Example:
//
//	uow := factory.Create()
//	uow.Begin(ctx)
//
//	o, err := order.NewOrder(id, tenantID, fields, "", nil, order.SourceManual, order.Unknown)
//	if err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	uow.Commit(ctx)
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// VehicleRepository provides access to vehicles and their order links within the unit of work.
func (uow *GormUnitOfWork) VehicleRepository() ports.VehicleRepository {
	return vehiclerepo.NewGormVehicleRepository(uow.conn(), uow)
}

// GatePassRepository provides access to gate pass persistence within the unit of work.
func (uow *GormUnitOfWork) GatePassRepository() ports.GatePassRepository {
	return gatepassrepo.NewGormGatePassRepository(uow.conn(), uow)
}

// PaymentRequestRepository provides access to payment requests within the unit of work.
// GetForUpdate only locks rows when called after Begin.
func (uow *GormUnitOfWork) PaymentRequestRepository() ports.PaymentRequestRepository {
	return paymentrepo.NewGormPaymentRequestRepository(uow.conn(), uow)
}

// BankTransactionRepository provides access to bank transactions within the unit of work.
func (uow *GormUnitOfWork) BankTransactionRepository() ports.BankTransactionRepository {
	return paymentrepo.NewGormBankTransactionRepository(uow.conn(), uow)
}

// AllocationRepository provides access to the allocation ledger within the unit of work.
func (uow *GormUnitOfWork) AllocationRepository() ports.AllocationRepository {
	return paymentrepo.NewGormAllocationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// TrackAggregate registers an aggregate written by one of the repositories.
// Repositories call it after a successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written since the unit of work was created.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	out := make([]TrackedAggregate, len(uow.trackedAggregates))
	copy(out, uow.trackedAggregates)
	return out
}
