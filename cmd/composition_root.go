package cmd

import (
	"log/slog"

	"logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/documentrepo"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	documents  ports.DocumentStore
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		documents:  documentrepo.NewGormDocumentStore(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fleetUoWs() commands.FleetUoWFactory {
	return FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) gateUoWs() commands.GateUoWFactory {
	return FuncGateUoWFactory(func() commands.GateUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledgerUoWs() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) component(name string) *slog.Logger {
	return c.logger.With("component", name)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateUpdateOrderFieldsCommandHandler() commands.UpdateOrderFieldsCommandHandler {
	return commands.NewUpdateOrderFieldsCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateChangeOrderAvailabilityCommandHandler() commands.ChangeOrderAvailabilityCommandHandler {
	return commands.NewChangeOrderAvailabilityCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateAssignVehicleCommandHandler() commands.AssignVehicleCommandHandler {
	return commands.NewAssignVehicleCommandHandler(c.fleetUoWs(), c.component("lifecycle"))
}

func (c *CompositionRoot) CreateUpdateVehicleStatusCommandHandler() commands.UpdateVehicleStatusCommandHandler {
	return commands.NewUpdateVehicleStatusCommandHandler(c.fleetUoWs(), c.documents, c.component("lifecycle"))
}

func (c *CompositionRoot) CreateRecordVehicleFinancialsCommandHandler() commands.RecordVehicleFinancialsCommandHandler {
	return commands.NewRecordVehicleFinancialsCommandHandler(c.fleetUoWs())
}

func (c *CompositionRoot) CreateRecordDetentionTimesCommandHandler() commands.RecordDetentionTimesCommandHandler {
	return commands.NewRecordDetentionTimesCommandHandler(c.fleetUoWs())
}

func (c *CompositionRoot) CreateCheckInCommandHandler() commands.CheckInCommandHandler {
	return commands.NewCheckInCommandHandler(c.gateUoWs())
}

func (c *CompositionRoot) CreateMoveThroughGateCommandHandler() commands.MoveThroughGateCommandHandler {
	return commands.NewMoveThroughGateCommandHandler(c.gateUoWs(), c.documents, c.component("lifecycle"))
}

func (c *CompositionRoot) CreateDiscardGatePassCommandHandler() commands.DiscardGatePassCommandHandler {
	return commands.NewDiscardGatePassCommandHandler(c.gateUoWs())
}

func (c *CompositionRoot) CreateRecordBankTransactionCommandHandler() commands.RecordBankTransactionCommandHandler {
	return commands.NewRecordBankTransactionCommandHandler(c.ledgerUoWs())
}

func (c *CompositionRoot) CreateCreatePaymentRequestCommandHandler() commands.CreatePaymentRequestCommandHandler {
	return commands.NewCreatePaymentRequestCommandHandler(c.ledgerUoWs(), c.documents)
}

func (c *CompositionRoot) CreateLinkTransactionsCommandHandler() commands.LinkTransactionsCommandHandler {
	return commands.NewLinkTransactionsCommandHandler(c.ledgerUoWs(), c.documents, c.component("ledger"))
}

func (c *CompositionRoot) CreateCompleteBatchCommandHandler() commands.CompleteBatchCommandHandler {
	return commands.NewCompleteBatchCommandHandler(c.ledgerUoWs(), c.documents, c.component("ledger"))
}

func (c *CompositionRoot) CreateReconcileVehicleCompletionCommandHandler() commands.ReconcileVehicleCompletionCommandHandler {
	return commands.NewReconcileVehicleCompletionCommandHandler(c.ledgerUoWs(), c.documents, c.component("ledger"))
}

func (c *CompositionRoot) CreateGetVehicleLedgerQueryHandler() queries.GetVehicleLedgerQueryHandler {
	return queries.NewGetVehicleLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetVehicleOrdersQueryHandler() queries.GetVehicleOrdersQueryHandler {
	return queries.NewGetVehicleOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreateOrder:             c.CreateCreateOrderCommandHandler(),
		UpdateOrderFields:       c.CreateUpdateOrderFieldsCommandHandler(),
		TransitionOrderStatus:   c.CreateTransitionOrderStatusCommandHandler(),
		ChangeOrderAvailability: c.CreateChangeOrderAvailabilityCommandHandler(),
		AssignVehicle:           c.CreateAssignVehicleCommandHandler(),
		UpdateVehicleStatus:     c.CreateUpdateVehicleStatusCommandHandler(),
		RecordVehicleFinancial:  c.CreateRecordVehicleFinancialsCommandHandler(),
		RecordDetentionTimes:    c.CreateRecordDetentionTimesCommandHandler(),
		CheckIn:                 c.CreateCheckInCommandHandler(),
		MoveThroughGate:         c.CreateMoveThroughGateCommandHandler(),
		DiscardGatePass:         c.CreateDiscardGatePassCommandHandler(),
		RecordBankTransaction:   c.CreateRecordBankTransactionCommandHandler(),
		CreatePaymentRequest:    c.CreateCreatePaymentRequestCommandHandler(),
		LinkTransactions:        c.CreateLinkTransactionsCommandHandler(),
		CompleteBatch:           c.CreateCompleteBatchCommandHandler(),
		GetVehicleLedger:        c.CreateGetVehicleLedgerQueryHandler(),
		GetVehicleOrders:        c.CreateGetVehicleOrdersQueryHandler(),
	}, c.logger)
}

// CreateJobManager wires the background jobs to repositories outside any
// transaction; each reconciliation opens its own unit of work.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reads := c.uowFactory.Create()
	return jobs.NewJobManager(
		c.CreateReconcileVehicleCompletionCommandHandler(),
		reads.VehicleRepository(),
		reads.OrderRepository(),
		c.config.ReconcileSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFleetUoWFactory func() commands.FleetUoW

func (f FuncFleetUoWFactory) Create() commands.FleetUoW {
	return f()
}

type FuncGateUoWFactory func() commands.GateUoW

func (f FuncGateUoWFactory) Create() commands.GateUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
