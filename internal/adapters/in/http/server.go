package http

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder             commands.CreateOrderCommandHandler
	UpdateOrderFields       commands.UpdateOrderFieldsCommandHandler
	TransitionOrderStatus   commands.TransitionOrderStatusCommandHandler
	ChangeOrderAvailability commands.ChangeOrderAvailabilityCommandHandler

	AssignVehicle          commands.AssignVehicleCommandHandler
	UpdateVehicleStatus    commands.UpdateVehicleStatusCommandHandler
	RecordVehicleFinancial commands.RecordVehicleFinancialsCommandHandler
	RecordDetentionTimes   commands.RecordDetentionTimesCommandHandler

	CheckIn         commands.CheckInCommandHandler
	MoveThroughGate commands.MoveThroughGateCommandHandler
	DiscardGatePass commands.DiscardGatePassCommandHandler

	RecordBankTransaction commands.RecordBankTransactionCommandHandler
	CreatePaymentRequest  commands.CreatePaymentRequestCommandHandler
	LinkTransactions      commands.LinkTransactionsCommandHandler
	CompleteBatch         commands.CompleteBatchCommandHandler

	GetVehicleLedger queries.GetVehicleLedgerQueryHandler
	GetVehicleOrders queries.GetVehicleOrdersQueryHandler
}

// Server translates HTTP requests into commands and queries. The caller's
// tenant and role come from the X-Tenant-ID and X-Role headers.
type Server struct {
	h      Handlers
	logger *slog.Logger
	now    func() time.Time
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register mounts the API under /api/v1 behind the request validator and
// publishes its description under /swagger/.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := LoadOpenAPI(context.Background())
	if err != nil {
		return err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return err
	}
	if err = RegisterSwagger(e, doc); err != nil {
		return err
	}

	g := e.Group("/api/v1", validator)

	g.POST("/orders", s.CreateOrder)
	g.PATCH("/orders/:id", s.UpdateOrderFields)
	g.POST("/orders/:id/status", s.TransitionOrderStatus)
	g.POST("/orders/:id/availability", s.ChangeOrderAvailability)

	g.POST("/vehicles/assignments", s.AssignVehicle)
	g.POST("/vehicles/:id/status", s.UpdateVehicleStatus)
	g.PUT("/vehicles/:id/financials", s.RecordVehicleFinancials)
	g.PUT("/vehicles/:id/detention", s.RecordDetentionTimes)
	g.GET("/vehicles/:id/orders", s.GetVehicleOrders)
	g.GET("/vehicles/:id/ledger", s.GetVehicleLedger)

	g.POST("/gate-passes", s.CheckIn)
	g.POST("/gate-passes/:id/movements", s.MoveThroughGate)
	g.POST("/gate-passes/:id/cancel", s.CancelGatePass)
	g.DELETE("/gate-passes/:id", s.DeleteGatePass)

	g.POST("/bank-transactions", s.RecordBankTransaction)
	g.POST("/payment-requests", s.CreatePaymentRequest)
	g.POST("/payment-requests/:id/transactions", s.LinkTransactions)
	g.POST("/payment-requests/batch-completions", s.CompleteBatch)

	return nil
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, "create order", err)
	}

	var body NewOrder
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	freight := decimal.Zero
	if body.FreightCost != nil {
		freight = *body.FreightCost
	}

	cmd, err := commands.NewCreateOrderCommand(caller, kernel.NewUUID(), body.fields(), body.TripReference,
		freight, parseSource(body.Source), order.ParseStatus(body.Status))
	if err != nil {
		return s.fail(ctx, "create order", err)
	}

	status, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "create order", err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: cmd.OrderID().String(), Status: status.String()})
}

// UpdateOrderFields handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrderFields(ctx echo.Context) error {
	caller, orderID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "update order", err)
	}

	var body OrderFieldsPatch
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderFieldsCommand(caller, orderID, body.patch(), parseSource(body.Source))
	if err != nil {
		return s.fail(ctx, "update order", err)
	}

	res, err := s.h.UpdateOrderFields.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "update order", err)
	}

	return ctx.JSON(http.StatusOK, FieldsUpdate{
		Applied:  toFieldNames(res.Applied),
		Skipped:  toFieldNames(res.Skipped),
		Advanced: res.Advanced,
	})
}

// TransitionOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) TransitionOrderStatus(ctx echo.Context) error {
	caller, orderID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "change order status", err)
	}

	var body StatusChange
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(caller, orderID, order.ParseStatus(body.Status))
	if err != nil {
		return s.fail(ctx, "change order status", err)
	}

	if err = s.h.TransitionOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "change order status", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderAvailability handles POST /api/v1/orders/:id/availability.
func (s *Server) ChangeOrderAvailability(ctx echo.Context) error {
	caller, orderID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "change order availability", err)
	}

	var body AvailabilityChange
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	action, err := commands.ParseAvailabilityAction(body.Action)
	if err != nil {
		return s.fail(ctx, "change order availability", err)
	}

	cmd, err := commands.NewChangeOrderAvailabilityCommand(caller, orderID, action)
	if err != nil {
		return s.fail(ctx, "change order availability", err)
	}

	status, err := s.h.ChangeOrderAvailability.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "change order availability", err)
	}

	return ctx.JSON(http.StatusOK, OrderStatus{ID: orderID.String(), Status: status.String()})
}

// AssignVehicle handles POST /api/v1/vehicles/assignments.
func (s *Server) AssignVehicle(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, "assign vehicle", err)
	}

	var body VehicleAssignment
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs, err := requiredIDs("orderIds", body.OrderIDs)
	if err != nil {
		return s.fail(ctx, "assign vehicle", err)
	}

	cmd, err := commands.NewAssignVehicleCommand(caller, kernel.NewUUID(), body.VehicleNumber, orderIDs, s.now())
	if err != nil {
		return s.fail(ctx, "assign vehicle", err)
	}

	res, err := s.h.AssignVehicle.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "assign vehicle", err)
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	return ctx.JSON(status, VehicleAssigned{VehicleID: res.Vehicle.ID().String(), Created: res.Created})
}

// UpdateVehicleStatus handles POST /api/v1/vehicles/:id/status.
func (s *Server) UpdateVehicleStatus(ctx echo.Context) error {
	caller, vehicleID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "change vehicle status", err)
	}

	var body StatusChange
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateVehicleStatusCommand(caller, vehicleID, vehicle.ParseStatus(body.Status),
		body.LoadingQuantity, s.now())
	if err != nil {
		return s.fail(ctx, "change vehicle status", err)
	}

	report, err := s.h.UpdateVehicleStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "change vehicle status", err)
	}

	return ctx.JSON(http.StatusOK, toSyncResult(report))
}

// RecordVehicleFinancials handles PUT /api/v1/vehicles/:id/financials.
func (s *Server) RecordVehicleFinancials(ctx echo.Context) error {
	caller, vehicleID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "record vehicle financials", err)
	}

	var body VehicleFinancials
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordVehicleFinancialsCommand(caller, vehicleID, body.Amount, body.Expense)
	if err != nil {
		return s.fail(ctx, "record vehicle financials", err)
	}

	if err = s.h.RecordVehicleFinancial.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "record vehicle financials", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordDetentionTimes handles PUT /api/v1/vehicles/:id/detention.
func (s *Server) RecordDetentionTimes(ctx echo.Context) error {
	caller, vehicleID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "record detention times", err)
	}

	var body DetentionTimes
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordDetentionTimesCommand(caller, vehicleID, body.ReachedAt, body.UnloadedAt)
	if err != nil {
		return s.fail(ctx, "record detention times", err)
	}

	if err = s.h.RecordDetentionTimes.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "record detention times", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetVehicleOrders handles GET /api/v1/vehicles/:id/orders.
func (s *Server) GetVehicleOrders(ctx echo.Context) error {
	caller, vehicleID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "retrieve vehicle orders", err)
	}

	query, err := queries.NewGetVehicleOrdersQuery(caller.TenantID(), vehicleID)
	if err != nil {
		return s.fail(ctx, "retrieve vehicle orders", err)
	}

	orders, err := s.h.GetVehicleOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "retrieve vehicle orders", err)
	}

	return ctx.JSON(http.StatusOK, toVehicleOrders(orders))
}

// GetVehicleLedger handles GET /api/v1/vehicles/:id/ledger.
func (s *Server) GetVehicleLedger(ctx echo.Context) error {
	caller, vehicleID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "retrieve vehicle ledger", err)
	}

	query, err := queries.NewGetVehicleLedgerQuery(caller.TenantID(), vehicleID)
	if err != nil {
		return s.fail(ctx, "retrieve vehicle ledger", err)
	}

	lines, err := s.h.GetVehicleLedger.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "retrieve vehicle ledger", err)
	}

	return ctx.JSON(http.StatusOK, toLedgerLines(lines))
}

// CheckIn handles POST /api/v1/gate-passes.
func (s *Server) CheckIn(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, "check in", err)
	}

	var body NewGatePass
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicleID, err := optionalID("vehicleId", body.VehicleID)
	if err != nil {
		return s.fail(ctx, "check in", err)
	}
	orderID, err := optionalID("orderId", body.OrderID)
	if err != nil {
		return s.fail(ctx, "check in", err)
	}

	cmd, err := commands.NewCheckInCommand(caller, kernel.NewUUID(), vehicleID, orderID, s.now())
	if err != nil {
		return s.fail(ctx, "check in", err)
	}

	if err = s.h.CheckIn.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "check in", err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: cmd.GatePassID().String()})
}

// MoveThroughGate handles POST /api/v1/gate-passes/:id/movements.
func (s *Server) MoveThroughGate(ctx echo.Context) error {
	caller, passID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "move through gate", err)
	}

	var body GateMovement
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	direction, err := commands.ParseGateDirection(body.Direction)
	if err != nil {
		return s.fail(ctx, "move through gate", err)
	}

	cmd, err := commands.NewMoveThroughGateCommand(caller, passID, direction, s.now())
	if err != nil {
		return s.fail(ctx, "move through gate", err)
	}

	report, err := s.h.MoveThroughGate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "move through gate", err)
	}

	return ctx.JSON(http.StatusOK, toSyncResult(report))
}

// CancelGatePass handles POST /api/v1/gate-passes/:id/cancel.
func (s *Server) CancelGatePass(ctx echo.Context) error {
	caller, passID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "cancel gate pass", err)
	}

	cmd, err := commands.NewCancelGatePassCommand(caller, passID)
	if err != nil {
		return s.fail(ctx, "cancel gate pass", err)
	}

	if err = s.h.DiscardGatePass.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "cancel gate pass", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteGatePass handles DELETE /api/v1/gate-passes/:id.
func (s *Server) DeleteGatePass(ctx echo.Context) error {
	caller, passID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "delete gate pass", err)
	}

	cmd, err := commands.NewDeleteGatePassCommand(caller, passID)
	if err != nil {
		return s.fail(ctx, "delete gate pass", err)
	}

	if err = s.h.DiscardGatePass.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "delete gate pass", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordBankTransaction handles POST /api/v1/bank-transactions.
func (s *Server) RecordBankTransaction(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, "record bank transaction", err)
	}

	var body NewBankTransaction
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordBankTransactionCommand(caller, kernel.NewUUID(), body.Code, body.BeneficiaryID,
		body.TotalPaidAmount, body.TransactionDate, body.ProofDocument)
	if err != nil {
		return s.fail(ctx, "record bank transaction", err)
	}

	if err = s.h.RecordBankTransaction.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "record bank transaction", err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: cmd.TransactionID().String()})
}

// CreatePaymentRequest handles POST /api/v1/payment-requests.
func (s *Server) CreatePaymentRequest(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, "create payment request", err)
	}

	var body NewPaymentRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicleIDs, err := requiredIDs("vehicleId", []string{body.VehicleID})
	if err != nil {
		return s.fail(ctx, "create payment request", err)
	}
	orderID, err := optionalID("orderId", body.OrderID)
	if err != nil {
		return s.fail(ctx, "create payment request", err)
	}

	cmd, err := commands.NewCreatePaymentRequestCommand(caller, kernel.NewUUID(), vehicleIDs[0], orderID,
		payment.ParseTransactionType(body.TransactionType), body.Amount, body.BeneficiaryID, s.now())
	if err != nil {
		return s.fail(ctx, "create payment request", err)
	}

	if err = s.h.CreatePaymentRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "create payment request", err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: cmd.RequestID().String(), Status: payment.StatusPending.String()})
}

// LinkTransactions handles POST /api/v1/payment-requests/:id/transactions.
func (s *Server) LinkTransactions(ctx echo.Context) error {
	caller, requestID, err := s.target(ctx)
	if err != nil {
		return s.fail(ctx, "link transactions", err)
	}

	var body TransactionLinks
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	legs, err := toLegs(body.Transactions)
	if err != nil {
		return s.fail(ctx, "link transactions", err)
	}

	cmd, err := commands.NewLinkTransactionsCommand(caller, requestID, legs, s.now())
	if err != nil {
		return s.fail(ctx, "link transactions", err)
	}

	res, err := s.h.LinkTransactions.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "link transactions", err)
	}

	out := LinkResult{
		Allocations:    toAllocations(res.Allocations),
		TotalAllocated: res.TotalAllocated,
		Completed:      res.Completed,
	}
	if res.Completion != nil {
		c := toCompletion("", *res.Completion)
		out.Completion = &c
	}
	return ctx.JSON(http.StatusOK, out)
}

// CompleteBatch handles POST /api/v1/payment-requests/batch-completions.
func (s *Server) CompleteBatch(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, "complete payment batch", err)
	}

	var body BatchCompletion
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	requestIDs, err := requiredIDs("paymentRequestIds", body.PaymentRequestIDs)
	if err != nil {
		return s.fail(ctx, "complete payment batch", err)
	}
	legs, err := toLegs(body.Transactions)
	if err != nil {
		return s.fail(ctx, "complete payment batch", err)
	}

	cmd, err := commands.NewCompleteBatchCommand(caller, requestIDs, legs, s.now())
	if err != nil {
		return s.fail(ctx, "complete payment batch", err)
	}

	res, err := s.h.CompleteBatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "complete payment batch", err)
	}

	completed := make([]string, 0, len(res.Completed))
	for _, r := range res.Completed {
		completed = append(completed, r.ID().String())
	}
	completions := make([]Completion, 0, len(res.Completions))
	for vehicleID, d := range res.Completions {
		completions = append(completions, toCompletion(vehicleID.String(), d))
	}
	sort.Slice(completions, func(i, j int) bool { return completions[i].VehicleID < completions[j].VehicleID })

	return ctx.JSON(http.StatusOK, BatchResult{
		Allocations: toAllocations(res.Allocations),
		Completed:   completed,
		Completions: completions,
	})
}

// target resolves the caller and the :id path parameter.
func (s *Server) target(ctx echo.Context) (kernel.Caller, kernel.UUID, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return kernel.Caller{}, kernel.UUID{}, err
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return kernel.Caller{}, kernel.UUID{}, err
	}
	return caller, id, nil
}

// parseSource defaults to a manual write.
func parseSource(s string) order.Source {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return order.SourceManual
	}
	return order.ParseSource(s)
}
