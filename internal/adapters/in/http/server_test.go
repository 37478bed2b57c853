package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type noDocuments struct{}

func (noDocuments) DocumentExists(context.Context, kernel.UUID, kernel.UUID, ports.DocumentType) (bool, error) {
	return false, nil
}

type orderUoWs func() commands.OrderUoW

func (f orderUoWs) Create() commands.OrderUoW { return f() }

type fleetUoWs func() commands.FleetUoW

func (f fleetUoWs) Create() commands.FleetUoW { return f() }

type gateUoWs func() commands.GateUoW

func (f gateUoWs) Create() commands.GateUoW { return f() }

type ledgerUoWs func() commands.UoW

func (f ledgerUoWs) Create() commands.UoW { return f() }

// ServerTestSuite drives the API through echo against an embedded SQLite database.
type ServerTestSuite struct {
	suite.Suite
	e      *echo.Echo
	tenant kernel.UUID
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	dsn := filepath.Join(suite.T().TempDir(), "api.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(postgres.Migrate(db))

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	suite.T().Cleanup(func() { _ = sqlDB.Close() })

	uows := postgres.NewGormUnitOfWorkFactory(db)
	var (
		orders orderUoWs  = func() commands.OrderUoW { return uows.CreateGorm() }
		fleet  fleetUoWs  = func() commands.FleetUoW { return uows.CreateGorm() }
		gate   gateUoWs   = func() commands.GateUoW { return uows.CreateGorm() }
		ledger ledgerUoWs = func() commands.UoW { return uows.CreateGorm() }
		docs              = noDocuments{}
	)

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:             commands.NewCreateOrderCommandHandler(orders),
		UpdateOrderFields:       commands.NewUpdateOrderFieldsCommandHandler(orders),
		TransitionOrderStatus:   commands.NewTransitionOrderStatusCommandHandler(orders),
		ChangeOrderAvailability: commands.NewChangeOrderAvailabilityCommandHandler(orders),
		AssignVehicle:           commands.NewAssignVehicleCommandHandler(fleet, nil),
		UpdateVehicleStatus:     commands.NewUpdateVehicleStatusCommandHandler(fleet, docs, nil),
		RecordVehicleFinancial:  commands.NewRecordVehicleFinancialsCommandHandler(fleet),
		RecordDetentionTimes:    commands.NewRecordDetentionTimesCommandHandler(fleet),
		CheckIn:                 commands.NewCheckInCommandHandler(gate),
		MoveThroughGate:         commands.NewMoveThroughGateCommandHandler(gate, docs, nil),
		DiscardGatePass:         commands.NewDiscardGatePassCommandHandler(gate),
		RecordBankTransaction:   commands.NewRecordBankTransactionCommandHandler(ledger),
		CreatePaymentRequest:    commands.NewCreatePaymentRequestCommandHandler(ledger, docs),
		LinkTransactions:        commands.NewLinkTransactionsCommandHandler(ledger, docs, nil),
		CompleteBatch:           commands.NewCompleteBatchCommandHandler(ledger, docs, nil),
		GetVehicleLedger:        queries.NewGetVehicleLedgerQueryHandler(db),
		GetVehicleOrders:        queries.NewGetVehicleOrdersQueryHandler(db),
	}, nil)

	suite.e = echo.New()
	suite.Require().NoError(server.Register(suite.e))
	suite.tenant = kernel.NewUUID()
}

func (suite *ServerTestSuite) do(method, path, role, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(httpadapter.HeaderTenantID, suite.tenant.String())
	req.Header.Set(httpadapter.HeaderRole, role)

	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func (suite *ServerTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (suite *ServerTestSuite) createOrder(so string) string {
	rec := suite.do(http.MethodPost, "/api/v1/orders", "OPERATOR", `{
		"soNumber": "`+so+`", "caseCount": 10, "caseLot": "LOT", "destinationTown": "Indore",
		"pinCode": "452001", "truckSize": 20, "truckType": "CLOSED", "freightCost": "12000"
	}`)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created httpadapter.Created
	suite.decode(rec, &created)
	suite.Equal("ASSIGN_VEHICLE", created.Status)
	return created.ID
}

func (suite *ServerTestSuite) TestMissingTenantHeader() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	suite.e.ServeHTTP(rec, req)

	suite.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (suite *ServerTestSuite) TestUnknownRole() {
	rec := suite.do(http.MethodPost, "/api/v1/orders", "driver", `{}`)

	suite.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (suite *ServerTestSuite) TestCreateOrder_MissingFields_StaysInformationNeeded() {
	rec := suite.do(http.MethodPost, "/api/v1/orders", "ADMIN", `{"soNumber": "SO-9"}`)

	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created httpadapter.Created
	suite.decode(rec, &created)
	suite.Equal("INFORMATION_NEEDED", created.Status)
}

func (suite *ServerTestSuite) TestAssignAndDriveVehicle() {
	first, second := suite.createOrder("SO-1"), suite.createOrder("SO-2")

	rec := suite.do(http.MethodPost, "/api/v1/vehicles/assignments", "OPERATOR",
		`{"vehicleNumber": "MP09AB1234", "orderIds": ["`+first+`", "`+second+`"]}`)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var assigned httpadapter.VehicleAssigned
	suite.decode(rec, &assigned)
	suite.True(assigned.Created)

	rec = suite.do(http.MethodPut, "/api/v1/vehicles/"+assigned.VehicleID+"/financials", "SECURITY", `{"amount": "10000"}`)
	suite.Equal(http.StatusForbidden, rec.Code)

	rec = suite.do(http.MethodPut, "/api/v1/vehicles/"+assigned.VehicleID+"/financials", "OPERATOR", `{"amount": "10000"}`)
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodPost, "/api/v1/vehicles/"+assigned.VehicleID+"/status", "SECURITY", `{"status": "ARRIVED"}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var sync httpadapter.SyncResult
	suite.decode(rec, &sync)
	suite.Equal("ARRIVED", sync.VehicleStatus)
	suite.Equal(2, sync.UpdatedOrders)
	suite.Empty(sync.Skipped)

	rec = suite.do(http.MethodPost, "/api/v1/vehicles/"+assigned.VehicleID+"/status", "SECURITY", `{"status": "VEHICLE_ASSIGNED"}`)
	suite.Equal(http.StatusUnprocessableEntity, rec.Code, "unknown vehicle status")

	rec = suite.do(http.MethodPost, "/api/v1/vehicles/"+assigned.VehicleID+"/status", "SECURITY", `{"status": "ASSIGNED"}`)
	suite.Equal(http.StatusConflict, rec.Code, "backward move")

	rec = suite.do(http.MethodPost, "/api/v1/vehicles/"+assigned.VehicleID+"/status", "SECURITY", `{"status": "LOADING_COMPLETE"}`)
	suite.Equal(http.StatusUnprocessableEntity, rec.Code, "loading quantity is required")

	rec = suite.do(http.MethodGet, "/api/v1/vehicles/"+assigned.VehicleID+"/orders", "OPERATOR", "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	var orders []httpadapter.VehicleOrder
	suite.decode(rec, &orders)
	suite.Require().Len(orders, 2)
	suite.Equal("SO-1", orders[0].SoNumber)
	suite.Equal("ARRIVED", orders[0].Status)
	suite.Equal("5000", orders[0].VehicleCost.String())
}

func (suite *ServerTestSuite) TestHoldThenAdvanceIsRejected() {
	id := suite.createOrder("SO-3")

	rec := suite.do(http.MethodPost, "/api/v1/orders/"+id+"/availability", "ADMIN", `{"action": "hold"}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodPost, "/api/v1/orders/"+id+"/status", "ADMIN", `{"status": "GATE_IN"}`)
	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *ServerTestSuite) TestUnknownOrder() {
	rec := suite.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", "ADMIN", `{"status": "ARRIVED"}`)

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestMalformedPathID() {
	rec := suite.do(http.MethodPost, "/api/v1/orders/not-a-uuid/status", "ADMIN", `{"status": "ARRIVED"}`)

	suite.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (suite *ServerTestSuite) TestBankTransactionAndEmptyLedger() {
	rec := suite.do(http.MethodPost, "/api/v1/bank-transactions", "OPERATOR", `{
		"code": "UTR-1", "beneficiaryId": "BEN-1", "totalPaidAmount": 4000,
		"transactionDate": "2026-05-04T09:00:00Z"
	}`)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodPost, "/api/v1/bank-transactions", "OPERATOR", `{
		"code": "UTR-1", "beneficiaryId": "BEN-1", "totalPaidAmount": 100,
		"transactionDate": "2026-05-04T09:00:00Z"
	}`)
	suite.Equal(http.StatusConflict, rec.Code, "duplicate code")

	rec = suite.do(http.MethodGet, "/api/v1/vehicles/"+kernel.NewUUID().String()+"/ledger", "OPERATOR", "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`[]`, rec.Body.String())
}

func (suite *ServerTestSuite) TestLinkToUnknownRequest() {
	rec := suite.do(http.MethodPost, "/api/v1/payment-requests/"+kernel.NewUUID().String()+"/transactions", "OPERATOR",
		`{"transactions": [{"transactionId": "`+kernel.NewUUID().String()+`"}]}`)

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestRequestsOutsideTheAPIDescription() {
	id := suite.createOrder("SO-4")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"status of the wrong type", http.MethodPost, "/api/v1/orders/" + id + "/status", `{"status": 5}`},
		{"status missing", http.MethodPost, "/api/v1/orders/" + id + "/status", `{}`},
		{"negative case count", http.MethodPatch, "/api/v1/orders/" + id, `{"caseCount": -1}`},
		{"leg without transaction", http.MethodPost, "/api/v1/payment-requests/" + id + "/transactions", `{"transactions": [{"amount": "10"}]}`},
		{"path id is not a uuid", http.MethodGet, "/api/v1/vehicles/42/orders", ""},
		{"body is not json", http.MethodPost, "/api/v1/gate-passes", `{"vehicleId":`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			rec := suite.do(tt.method, tt.path, "ADMIN", tt.body)

			suite.Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			var body httpadapter.Error
			suite.decode(rec, &body)
			suite.Equal(http.StatusUnprocessableEntity, body.Code)
			suite.NotEmpty(body.Message)
		})
	}
}

func (suite *ServerTestSuite) TestSwaggerDocument() {
	rec := suite.do(http.MethodGet, "/swagger/doc.json", "", "")
	suite.Require().Equal(http.StatusOK, rec.Code)

	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	suite.decode(rec, &doc)
	suite.Equal("3.0.3", doc.OpenAPI)
	suite.Contains(doc.Paths, "/api/v1/vehicles/{id}/status")
	suite.Contains(doc.Paths, "/api/v1/payment-requests/batch-completions")
}
