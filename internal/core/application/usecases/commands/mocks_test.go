package commands_test

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/gatepass"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetMany(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID, ids)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListByVehicle(ctx context.Context, tenantID, vehicleID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID, vehicleID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleRepository) GetForUpdate(ctx context.Context, tenantID, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleRepository) FindByNumber(ctx context.Context, tenantID kernel.UUID, number string) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, tenantID, number)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleRepository) LinkOrders(ctx context.Context, tenantID, vehicleID kernel.UUID, orderIDs []kernel.UUID) error {
	args := m.Called(ctx, tenantID, vehicleID, orderIDs)
	return args.Error(0)
}

func (m *MockVehicleRepository) ListAwaitingCompletion(ctx context.Context, after *kernel.UUID, limit int) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx, after, limit)
	vs, _ := args.Get(0).([]*vehicle.Vehicle)
	return vs, args.Error(1)
}

func (m *MockVehicleRepository) ListActive(ctx context.Context, after *kernel.UUID, limit int) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx, after, limit)
	vs, _ := args.Get(0).([]*vehicle.Vehicle)
	return vs, args.Error(1)
}

type MockGatePassRepository struct{ mock.Mock }

func (m *MockGatePassRepository) Add(ctx context.Context, g *gatepass.GatePass) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGatePassRepository) Update(ctx context.Context, g *gatepass.GatePass) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGatePassRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*gatepass.GatePass, error) {
	args := m.Called(ctx, tenantID, id)
	g, _ := args.Get(0).(*gatepass.GatePass)
	return g, args.Error(1)
}

func (m *MockGatePassRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockPaymentRequestRepository struct{ mock.Mock }

func (m *MockPaymentRequestRepository) Add(ctx context.Context, r *payment.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockPaymentRequestRepository) Update(ctx context.Context, r *payment.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockPaymentRequestRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*payment.Request, error) {
	args := m.Called(ctx, tenantID, id)
	r, _ := args.Get(0).(*payment.Request)
	return r, args.Error(1)
}

func (m *MockPaymentRequestRepository) GetForUpdate(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*payment.Request, error) {
	args := m.Called(ctx, tenantID, ids)
	rs, _ := args.Get(0).([]*payment.Request)
	return rs, args.Error(1)
}

func (m *MockPaymentRequestRepository) ListByVehicle(ctx context.Context, tenantID, vehicleID kernel.UUID) ([]*payment.Request, error) {
	args := m.Called(ctx, tenantID, vehicleID)
	rs, _ := args.Get(0).([]*payment.Request)
	return rs, args.Error(1)
}

type MockBankTransactionRepository struct{ mock.Mock }

func (m *MockBankTransactionRepository) Add(ctx context.Context, tx *payment.BankTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*payment.BankTransaction, error) {
	args := m.Called(ctx, tenantID, id)
	tx, _ := args.Get(0).(*payment.BankTransaction)
	return tx, args.Error(1)
}

func (m *MockBankTransactionRepository) GetForUpdate(
	ctx context.Context,
	tenantID kernel.UUID,
	ids []kernel.UUID,
) (map[kernel.UUID]*payment.BankTransaction, error) {
	args := m.Called(ctx, tenantID, ids)
	txs, _ := args.Get(0).(map[kernel.UUID]*payment.BankTransaction)
	return txs, args.Error(1)
}

func (m *MockBankTransactionRepository) GetMany(
	ctx context.Context,
	tenantID kernel.UUID,
	ids []kernel.UUID,
) (map[kernel.UUID]*payment.BankTransaction, error) {
	args := m.Called(ctx, tenantID, ids)
	txs, _ := args.Get(0).(map[kernel.UUID]*payment.BankTransaction)
	return txs, args.Error(1)
}

type MockAllocationRepository struct{ mock.Mock }

func (m *MockAllocationRepository) Add(ctx context.Context, allocations ...*payment.Allocation) error {
	args := m.Called(ctx, allocations)
	return args.Error(0)
}

func (m *MockAllocationRepository) ListByRequests(ctx context.Context, tenantID kernel.UUID, requestIDs []kernel.UUID) ([]*payment.Allocation, error) {
	args := m.Called(ctx, tenantID, requestIDs)
	allocs, _ := args.Get(0).([]*payment.Allocation)
	return allocs, args.Error(1)
}

func (m *MockAllocationRepository) SumByTransactions(
	ctx context.Context,
	tenantID kernel.UUID,
	transactionIDs []kernel.UUID,
) (map[kernel.UUID]decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, transactionIDs)
	sums, _ := args.Get(0).(map[kernel.UUID]decimal.Decimal)
	return sums, args.Error(1)
}

type MockDocumentStore struct{ mock.Mock }

func (m *MockDocumentStore) DocumentExists(ctx context.Context, tenantID, subjectID kernel.UUID, docType ports.DocumentType) (bool, error) {
	args := m.Called(ctx, tenantID, subjectID, docType)
	return args.Bool(0), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) GatePassRepository() ports.GatePassRepository {
	args := m.Called()
	return args.Get(0).(ports.GatePassRepository)
}

func (m *MockUoW) PaymentRequestRepository() ports.PaymentRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRequestRepository)
}

func (m *MockUoW) BankTransactionRepository() ports.BankTransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.BankTransactionRepository)
}

func (m *MockUoW) AllocationRepository() ports.AllocationRepository {
	args := m.Called()
	return args.Get(0).(ports.AllocationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockFleetUoWFactory struct{ mock.Mock }

func (m *MockFleetUoWFactory) Create() commands.FleetUoW {
	args := m.Called()
	return args.Get(0).(commands.FleetUoW)
}

type MockGateUoWFactory struct{ mock.Mock }

func (m *MockGateUoWFactory) Create() commands.GateUoW {
	args := m.Called()
	return args.Get(0).(commands.GateUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// repos wires one mock of each repository into a MockUoW. Accessors may be
// called any number of times.
type repos struct {
	uow          *MockUoW
	orders       *MockOrderRepository
	vehicles     *MockVehicleRepository
	gatePasses   *MockGatePassRepository
	requests     *MockPaymentRequestRepository
	transactions *MockBankTransactionRepository
	allocations  *MockAllocationRepository
}

func newRepos() repos {
	r := repos{
		uow:          new(MockUoW),
		orders:       new(MockOrderRepository),
		vehicles:     new(MockVehicleRepository),
		gatePasses:   new(MockGatePassRepository),
		requests:     new(MockPaymentRequestRepository),
		transactions: new(MockBankTransactionRepository),
		allocations:  new(MockAllocationRepository),
	}
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("VehicleRepository").Return(r.vehicles).Maybe()
	r.uow.On("GatePassRepository").Return(r.gatePasses).Maybe()
	r.uow.On("PaymentRequestRepository").Return(r.requests).Maybe()
	r.uow.On("BankTransactionRepository").Return(r.transactions).Maybe()
	r.uow.On("AllocationRepository").Return(r.allocations).Maybe()
	return r
}

// expectTx expects a transaction that commits with commitErr and is rolled back afterwards.
func (r repos) expectTx(ctx context.Context, commitErr error) {
	r.uow.On("Begin", ctx).Return(nil).Once()
	r.uow.On("Commit", ctx).Return(commitErr).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()
}

// expectAbortedTx expects a transaction that is rolled back without commit.
func (r repos) expectAbortedTx(ctx context.Context) {
	r.uow.On("Begin", ctx).Return(nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()
}

type mockAsserter interface {
	AssertExpectations(t mock.TestingT) bool
}

func (r repos) assert(t mock.TestingT) {
	for _, m := range []mockAsserter{r.uow, r.orders, r.vehicles, r.gatePasses, r.requests, r.transactions, r.allocations} {
		m.AssertExpectations(t)
	}
}

func (r repos) orderFactory() *MockOrderUoWFactory {
	f := new(MockOrderUoWFactory)
	f.On("Create").Return(r.uow).Once()
	return f
}

func (r repos) fleetFactory() *MockFleetUoWFactory {
	f := new(MockFleetUoWFactory)
	f.On("Create").Return(r.uow).Once()
	return f
}

func (r repos) gateFactory() *MockGateUoWFactory {
	f := new(MockGateUoWFactory)
	f.On("Create").Return(r.uow).Once()
	return f
}

func (r repos) ledgerFactory() *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(r.uow).Once()
	return f
}

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
