package commands_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type funcOrderUoWFactory func() commands.OrderUoW

func (f funcOrderUoWFactory) Create() commands.OrderUoW { return f() }

type funcFleetUoWFactory func() commands.FleetUoW

func (f funcFleetUoWFactory) Create() commands.FleetUoW { return f() }

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW { return f() }

// attachedDocuments is an in-memory document store keyed by subject and type.
type attachedDocuments map[kernel.UUID]map[ports.DocumentType]bool

func (d attachedDocuments) DocumentExists(_ context.Context, _, subjectID kernel.UUID, docType ports.DocumentType) (bool, error) {
	return d[subjectID][docType], nil
}

func (d attachedDocuments) attach(subjectID kernel.UUID, docType ports.DocumentType) {
	if d[subjectID] == nil {
		d[subjectID] = make(map[ports.DocumentType]bool)
	}
	d[subjectID][docType] = true
}

// LedgerFlowSuite runs the handlers against a real unit of work on an embedded SQLite database.
type LedgerFlowSuite struct {
	suite.Suite
	db     *gorm.DB
	uows   *postgres.GormUnitOfWorkFactory
	docs   attachedDocuments
	admin  kernel.Caller
	orders funcOrderUoWFactory
	fleet  funcFleetUoWFactory
	ledger funcUoWFactory
	clock  time.Time
}

func TestLedgerFlowSuite(t *testing.T) {
	suite.Run(t, new(LedgerFlowSuite))
}

func (s *LedgerFlowSuite) SetupTest() {
	dsn := filepath.Join(s.T().TempDir(), "engine.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.T().Cleanup(func() { _ = sqlDB.Close() })

	s.Require().NoError(postgres.Migrate(db))

	s.db = db
	s.uows = postgres.NewGormUnitOfWorkFactory(db)
	s.docs = attachedDocuments{}
	s.admin = callerWith(s.T(), kernel.RoleAdmin)
	s.orders = func() commands.OrderUoW { return s.uows.CreateGorm() }
	s.fleet = func() commands.FleetUoW { return s.uows.CreateGorm() }
	s.ledger = func() commands.UoW { return s.uows.CreateGorm() }
	s.clock = t0
}

func (s *LedgerFlowSuite) tick() time.Time {
	s.clock = s.clock.Add(time.Hour)
	return s.clock
}

func (s *LedgerFlowSuite) createOrder(so string) kernel.UUID {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(s.admin, id, readyFields(so), "TRIP-9",
		decimal.NewFromInt(12000), order.SourceManual, order.Unknown)
	s.Require().NoError(err)

	status, err := commands.NewCreateOrderCommandHandler(s.orders).Handle(s.T().Context(), cmd)
	s.Require().NoError(err)
	s.Require().Equal(order.AssignVehicle, status)
	return id
}

// dispatchVehicle assigns a new vehicle to the orders and drives it to IN_JOURNEY.
func (s *LedgerFlowSuite) dispatchVehicle(orderIDs ...kernel.UUID) kernel.UUID {
	ctx := s.T().Context()

	assign, err := commands.NewAssignVehicleCommand(s.admin, kernel.NewUUID(), "MP09 AB 1234", orderIDs, s.tick())
	s.Require().NoError(err)
	res, err := commands.NewAssignVehicleCommandHandler(s.fleet, nil).Handle(ctx, assign)
	s.Require().NoError(err)
	vehicleID := res.Vehicle.ID()

	amount := decimal.NewFromInt(10000)
	financials, err := commands.NewRecordVehicleFinancialsCommand(s.admin, vehicleID, &amount, nil)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewRecordVehicleFinancialsCommandHandler(s.fleet).Handle(ctx, financials))

	s.docs.attach(vehicleID, ports.DocumentTripInvoice)
	qty := decimal.NewFromInt(100)
	statusHandler := commands.NewUpdateVehicleStatusCommandHandler(s.fleet, s.docs, nil)
	for _, step := range []vehicle.Status{vehicle.Arrived, vehicle.GateIn, vehicle.LoadingComplete, vehicle.GateOut, vehicle.InJourney} {
		var q *decimal.Decimal
		if step == vehicle.LoadingComplete {
			q = &qty
		}
		cmd, err := commands.NewUpdateVehicleStatusCommand(s.admin, vehicleID, step, q, s.tick())
		s.Require().NoError(err)
		report, err := statusHandler.Handle(ctx, cmd)
		s.Require().NoError(err)
		s.Require().Empty(report.Skipped(), "step %s", step)
	}

	return vehicleID
}

func (s *LedgerFlowSuite) recordTransaction(code string, amount int64, date time.Time) kernel.UUID {
	id := kernel.NewUUID()
	cmd, err := commands.NewRecordBankTransactionCommand(s.admin, id, code, "BEN-7", decimal.NewFromInt(amount), date, "")
	s.Require().NoError(err)
	s.Require().NoError(commands.NewRecordBankTransactionCommandHandler(s.ledger).Handle(s.T().Context(), cmd))
	return id
}

func (s *LedgerFlowSuite) raiseRequest(vehicleID kernel.UUID, typ payment.TransactionType, amount int64) kernel.UUID {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePaymentRequestCommand(s.admin, id, vehicleID, nil, typ, decimal.NewFromInt(amount), "BEN-7", s.tick())
	s.Require().NoError(err)
	s.Require().NoError(commands.NewCreatePaymentRequestCommandHandler(s.ledger, s.docs).Handle(s.T().Context(), cmd))
	return id
}

func (s *LedgerFlowSuite) link(requestID kernel.UUID, txIDs ...kernel.UUID) (commands.LinkTransactionsResult, error) {
	legs := make([]commands.TransactionLeg, 0, len(txIDs))
	for _, id := range txIDs {
		legs = append(legs, commands.TransactionLeg{TransactionID: id})
	}
	cmd, err := commands.NewLinkTransactionsCommand(s.admin, requestID, legs, s.tick())
	s.Require().NoError(err)
	return commands.NewLinkTransactionsCommandHandler(s.ledger, s.docs, nil).Handle(s.T().Context(), cmd)
}

func (s *LedgerFlowSuite) loadVehicle(id kernel.UUID) *vehicle.Vehicle {
	v, err := s.uows.Create().VehicleRepository().Get(s.T().Context(), tenant, id)
	s.Require().NoError(err)
	return v
}

func (s *LedgerFlowSuite) loadOrder(id kernel.UUID) *order.Order {
	o, err := s.uows.Create().OrderRepository().Get(s.T().Context(), tenant, id)
	s.Require().NoError(err)
	return o
}

func (s *LedgerFlowSuite) Test_PaidTripWithPOD_CompletesVehicleAndOrders() {
	o1, o2 := s.createOrder("SO-100"), s.createOrder("SO-101")
	vehicleID := s.dispatchVehicle(o1, o2)
	s.Equal(order.InJourney, s.loadOrder(o1).Status())

	advanceTx := s.recordTransaction("UTR-1", 4000, t0.Add(48*time.Hour))
	balanceTx := s.recordTransaction("UTR-2", 6000, t0.Add(96*time.Hour))

	advance := s.raiseRequest(vehicleID, payment.TypeAdvanceShipping, 4000)
	res, err := s.link(advance, advanceTx)
	s.Require().NoError(err)
	s.True(res.Completed)
	s.Nil(res.Completion)

	s.docs.attach(vehicleID, ports.DocumentPOD)
	balance := s.raiseRequest(vehicleID, payment.TypeBalanceShipping, 6000)
	res, err = s.link(balance, balanceTx)
	s.Require().NoError(err)

	s.True(res.Completed)
	s.Require().NotNil(res.Completion)
	s.Equal(services.CompletionAdvanced, res.Completion.Outcome)
	s.Equal(2, res.Completion.Sync.UpdatedCount())

	v := s.loadVehicle(vehicleID)
	s.Equal(vehicle.Completed, v.Status())
	for _, id := range []kernel.UUID{o1, o2} {
		o := s.loadOrder(id)
		s.Equal(order.Completed, o.Status())
		s.Require().NotNil(o.Profit())
		s.True(o.Profit().Equal(decimal.NewFromInt(7000)), "profit %s", o.Profit())
	}

	req, err := s.uows.Create().PaymentRequestRepository().Get(s.T().Context(), tenant, balance)
	s.Require().NoError(err)
	s.Require().NotNil(req.PaymentDate())
	s.True(req.PaymentDate().Equal(t0.Add(96*time.Hour)))
}

func (s *LedgerFlowSuite) Test_PODAfterPayment_IsPickedUpByReconciliation() {
	o1 := s.createOrder("SO-200")
	vehicleID := s.dispatchVehicle(o1)
	tx := s.recordTransaction("UTR-3", 10000, t0)

	s.docs.attach(vehicleID, ports.DocumentPOD)
	full := s.raiseRequest(vehicleID, payment.TypeFullShippingCharges, 10000)
	delete(s.docs, vehicleID)

	res, err := s.link(full, tx)
	s.Require().NoError(err)
	s.Require().NotNil(res.Completion)
	s.Equal(services.CompletionAwaitingPOD, res.Completion.Outcome)
	s.Equal(vehicle.InJourney, s.loadVehicle(vehicleID).Status())

	awaiting, err := s.uows.Create().VehicleRepository().ListAwaitingCompletion(s.T().Context(), nil, 10)
	s.Require().NoError(err)
	s.Require().Len(awaiting, 1)
	s.Equal(vehicleID, awaiting[0].ID())

	s.docs.attach(vehicleID, ports.DocumentPOD)
	cmd, err := commands.NewReconcileVehicleCompletionCommand(tenant, vehicleID, s.tick())
	s.Require().NoError(err)
	decision, err := commands.NewReconcileVehicleCompletionCommandHandler(s.ledger, s.docs, nil).Handle(s.T().Context(), cmd)
	s.Require().NoError(err)

	s.Equal(services.CompletionAdvanced, decision.Outcome)
	s.Equal(vehicle.Completed, s.loadVehicle(vehicleID).Status())
	s.Equal(order.Completed, s.loadOrder(o1).Status())
}

func (s *LedgerFlowSuite) Test_TransactionSplitAcrossRequests() {
	vehicleID := s.dispatchVehicle(s.createOrder("SO-300"))
	tx := s.recordTransaction("UTR-4", 1000, t0)

	first := s.raiseRequest(vehicleID, payment.TypeMiscellaneous, 600)
	second := s.raiseRequest(vehicleID, payment.TypeMiscellaneous, 600)

	res, err := s.link(first, tx)
	s.Require().NoError(err)
	s.True(res.Completed)

	res, err = s.link(second, tx)
	s.Require().NoError(err)
	s.False(res.Completed)
	s.True(res.TotalAllocated.Equal(decimal.NewFromInt(400)))

	_, err = s.link(second, tx)
	s.Require().ErrorIs(err, errs.ErrTransactionExhausted)
}

func (s *LedgerFlowSuite) Test_CompleteBatch() {
	vehicleID := s.dispatchVehicle(s.createOrder("SO-400"))
	ctx := s.T().Context()

	a := s.raiseRequest(vehicleID, payment.TypeMiscellaneous, 100)
	b := s.raiseRequest(vehicleID, payment.TypeUnloadingCharge, 200)
	tx1 := s.recordTransaction("UTR-5", 250, t0)
	tx2 := s.recordTransaction("UTR-6", 50, t0.Add(time.Hour))
	handler := commands.NewCompleteBatchCommandHandler(s.ledger, s.docs, nil)

	s.Run("underfunded batch should write nothing", func() {
		cmd, err := commands.NewCompleteBatchCommand(s.admin, []kernel.UUID{a, b},
			[]commands.TransactionLeg{{TransactionID: tx1}}, s.tick())
		s.Require().NoError(err)

		_, err = handler.Handle(ctx, cmd)
		s.Require().ErrorIs(err, errs.ErrBatchUnderfunded)

		allocs, err := s.uows.Create().AllocationRepository().ListByRequests(ctx, tenant, []kernel.UUID{a, b})
		s.Require().NoError(err)
		s.Empty(allocs)
	})

	s.Run("exact funds should complete every request", func() {
		cmd, err := commands.NewCompleteBatchCommand(s.admin, []kernel.UUID{a, b},
			[]commands.TransactionLeg{{TransactionID: tx1}, {TransactionID: tx2}}, s.tick())
		s.Require().NoError(err)

		res, err := handler.Handle(ctx, cmd)
		s.Require().NoError(err)

		s.Len(res.Completed, 2)
		s.Len(res.Allocations, 3)
		s.Empty(res.Completions)

		requests, err := s.uows.Create().PaymentRequestRepository().ListByVehicle(ctx, tenant, vehicleID)
		s.Require().NoError(err)
		for _, r := range requests {
			s.True(r.IsCompleted(), "request %s", r.ID())
		}
	})
}

func TestLedgerFlow_ForbiddenForSecurity(t *testing.T) {
	_, err := commands.NewCompleteBatchCommand(callerWith(t, kernel.RoleSecurity), []kernel.UUID{kernel.NewUUID()},
		[]commands.TransactionLeg{{TransactionID: kernel.NewUUID()}}, t0)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.ErrorContains(t, err, "SECURITY")
}
