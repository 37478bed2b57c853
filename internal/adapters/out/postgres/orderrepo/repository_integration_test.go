package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/vehiclerepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	tenantID   kernel.UUID
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &vehiclerepo.VehicleDTO{}, &vehiclerepo.VehicleOrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, vehicles, vehicle_orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.tenantID = kernel.NewUUID()
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := suite.T().Context()
	o := suite.newOrder("SO-1", readyFields("SO-1"))

	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.assertOrderCount(1)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateSoNumber_ReturnsConflict() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("SO-1", readyFields("SO-1"))))

	err := suite.repository.Add(ctx, suite.newOrder("SO-1", readyFields("SO-1")))

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_SameSoNumberInAnotherTenant_Success() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("SO-1", readyFields("SO-1"))))

	other, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), readyFields("SO-1"), "",
		decimal.Zero, order.SourceManual, order.Unknown)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, other))
	suite.assertOrderCount(2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsEveryColumn() {
	ctx := suite.T().Context()
	o := suite.newOrder("SO-7", order.EligibilityFields{SoNumber: "SO-7", CaseCount: 10})
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, suite.tenantID, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), got.ID())
	suite.Equal(order.InformationNeeded, got.Status())
	suite.Equal(o.Eligibility(), got.Eligibility())
	suite.True(o.FreightCost().Equal(got.FreightCost()))
	suite.Equal(order.SourceImport, got.Provenance()[order.FieldCaseCount])
	suite.Nil(got.Profit())
	suite.Nil(got.PreviousStatus())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_OtherTenant_ReturnsNotFound() {
	ctx := suite.T().Context()
	o := suite.newOrder("SO-1", readyFields("SO-1"))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, kernel.NewUUID(), o.ID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsFreezeAndProfit() {
	ctx := suite.T().Context()
	o := suite.newOrder("SO-2", readyFields("SO-2"))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.AssignVehicleCost(decimal.NewFromInt(600)))
	suite.Require().NoError(o.TransitionTo(order.Completed))
	suite.Require().NoError(o.Hold())
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, suite.tenantID, o.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Hold, got.Status())
	suite.Require().NotNil(got.PreviousStatus())
	suite.Equal(order.Completed, *got.PreviousStatus())
	suite.Require().NotNil(got.Profit())
	suite.True(decimal.NewFromInt(400).Equal(*got.Profit()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	err := suite.repository.Update(suite.T().Context(), suite.newOrder("SO-9", readyFields("SO-9")))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetMany_PreservesRequestedOrder() {
	ctx := suite.T().Context()
	a := suite.newOrder("SO-A", readyFields("SO-A"))
	b := suite.newOrder("SO-B", readyFields("SO-B"))
	suite.Require().NoError(suite.repository.Add(ctx, a))
	suite.Require().NoError(suite.repository.Add(ctx, b))

	got, err := suite.repository.GetMany(ctx, suite.tenantID, []kernel.UUID{b.ID(), a.ID()})
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(b.ID(), got[0].ID())
	suite.Equal(a.ID(), got[1].ID())

	_, err = suite.repository.GetMany(ctx, suite.tenantID, []kernel.UUID{a.ID(), kernel.NewUUID()})
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByVehicle_ReturnsLinkedOrders() {
	ctx := suite.T().Context()
	linked := suite.newOrder("SO-L", readyFields("SO-L"))
	unlinked := suite.newOrder("SO-U", readyFields("SO-U"))
	suite.Require().NoError(suite.repository.Add(ctx, linked))
	suite.Require().NoError(suite.repository.Add(ctx, unlinked))

	vehicleID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&vehiclerepo.VehicleOrderDTO{
		VehicleID: vehicleID.Bytes(),
		OrderID:   linked.ID().Bytes(),
		TenantID:  suite.tenantID.Bytes(),
		LinkedAt:  time.Now().UTC(),
	}).Error)

	got, err := suite.repository.ListByVehicle(ctx, suite.tenantID, vehicleID)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(linked.ID(), got[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(soNumber string, fields order.EligibilityFields) *order.Order {
	fields.SoNumber = soNumber
	o, err := order.NewOrder(kernel.NewUUID(), suite.tenantID, fields, "TRIP-1",
		decimal.NewFromInt(1000), order.SourceImport, order.Unknown)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func readyFields(soNumber string) order.EligibilityFields {
	return order.EligibilityFields{
		SoNumber:        soNumber,
		CaseCount:       120,
		CaseLot:         "LOT-7",
		DestinationTown: "Pune",
		PinCode:         "411001",
		TruckSize:       32,
		TruckType:       "CONTAINER",
	}
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
