package commands_test

import (
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/gatepass"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGatePass(t *testing.T, vehicleID, orderID *kernel.UUID) *gatepass.GatePass {
	t.Helper()

	g, err := gatepass.NewGatePass(kernel.NewUUID(), tenant, vehicleID, orderID, t0)
	require.NoError(t, err)
	return g
}

func TestCheckInCommandHandler_Handle(t *testing.T) {
	t.Run("check-in should not move the vehicle", func(t *testing.T) {
		ctx := t.Context()
		v := newVehicle(t, vehicle.Assigned)
		vehicleID := v.ID()

		cmd, err := commands.NewCheckInCommand(callerWith(t, kernel.RoleSecurity), kernel.NewUUID(), &vehicleID, nil, t0)
		require.NoError(t, err)

		r := newRepos()
		r.expectTx(ctx, nil)
		r.vehicles.On("Get", ctx, tenant, v.ID()).Return(v, nil).Once()
		r.gatePasses.On("Add", ctx, mock.MatchedBy(func(g *gatepass.GatePass) bool {
			return g.Status() == gatepass.CheckIn && g.ID() == cmd.GatePassID()
		})).Return(nil).Once()

		err = commands.NewCheckInCommandHandler(r.gateFactory()).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, vehicle.Assigned, v.Status())
		r.assert(t)
	})

	t.Run("pass without subject should be rejected", func(t *testing.T) {
		_, err := commands.NewCheckInCommand(callerWith(t, kernel.RoleSecurity), kernel.NewUUID(), nil, nil, t0)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown order should fail", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		cmd, err := commands.NewCheckInCommand(callerWith(t, kernel.RoleSecurity), kernel.NewUUID(), nil, &orderID, t0)
		require.NoError(t, err)

		r := newRepos()
		r.expectAbortedTx(ctx)
		r.orders.On("Get", ctx, tenant, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

		err = commands.NewCheckInCommandHandler(r.gateFactory()).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		r.assert(t)
	})
}

func TestMoveThroughGateCommandHandler_Handle(t *testing.T) {
	t.Run("gate-in should move the pass, the vehicle and its orders", func(t *testing.T) {
		ctx := t.Context()
		v := newVehicle(t, vehicle.Assigned)
		vehicleID := v.ID()
		pass := newGatePass(t, &vehicleID, nil)
		o := newOrder(t, order.VehicleAssigned)
		at := t0.Add(time.Hour)

		cmd, err := commands.NewMoveThroughGateCommand(callerWith(t, kernel.RoleSecurity), pass.ID(), commands.DirectionIn, at)
		require.NoError(t, err)

		r := newRepos()
		r.expectTx(ctx, nil)
		r.gatePasses.On("Get", ctx, tenant, pass.ID()).Return(pass, nil).Once()
		r.gatePasses.On("Update", ctx, pass).Return(nil).Once()
		r.vehicles.On("GetForUpdate", ctx, tenant, v.ID()).Return(v, nil).Once()
		r.vehicles.On("Update", ctx, v).Return(nil).Once()
		r.orders.On("ListByVehicle", ctx, tenant, v.ID()).Return([]*order.Order{o}, nil).Once()
		r.orders.On("Update", ctx, o).Return(nil).Once()

		report, err := commands.NewMoveThroughGateCommandHandler(r.gateFactory(), new(MockDocumentStore), nil).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, gatepass.GateIn, pass.Status())
		assert.Equal(t, vehicle.GateIn, v.Status())
		assert.Equal(t, order.GateIn, o.Status())
		assert.Equal(t, 1, report.UpdatedCount())
		gateInAt, ok := v.Milestones().At(vehicle.GateIn)
		require.True(t, ok)
		assert.Equal(t, at, gateInAt)
		r.assert(t)
	})

	t.Run("vehicle already past the gate should stay where it is", func(t *testing.T) {
		ctx := t.Context()
		v := newVehicle(t, vehicle.LoadingStart)
		vehicleID := v.ID()
		pass := newGatePass(t, &vehicleID, nil)

		cmd, err := commands.NewMoveThroughGateCommand(callerWith(t, kernel.RoleSecurity), pass.ID(), commands.DirectionIn, t0)
		require.NoError(t, err)

		r := newRepos()
		r.expectTx(ctx, nil)
		r.gatePasses.On("Get", ctx, tenant, pass.ID()).Return(pass, nil).Once()
		r.gatePasses.On("Update", ctx, pass).Return(nil).Once()
		r.vehicles.On("GetForUpdate", ctx, tenant, v.ID()).Return(v, nil).Once()

		report, err := commands.NewMoveThroughGateCommandHandler(r.gateFactory(), new(MockDocumentStore), nil).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, vehicle.LoadingStart, v.Status())
		assert.Equal(t, vehicle.LoadingStart, report.VehicleStatus)
		r.assert(t)
	})

	t.Run("gate-out of a vehicle without trip invoice should fail", func(t *testing.T) {
		ctx := t.Context()
		v := newVehicle(t, vehicle.LoadingComplete)
		vehicleID := v.ID()
		pass := newGatePass(t, &vehicleID, nil)
		require.NoError(t, pass.GateIn(t0))

		cmd, err := commands.NewMoveThroughGateCommand(callerWith(t, kernel.RoleSecurity), pass.ID(), commands.DirectionOut, t0.Add(time.Hour))
		require.NoError(t, err)

		r := newRepos()
		r.expectAbortedTx(ctx)
		r.gatePasses.On("Get", ctx, tenant, pass.ID()).Return(pass, nil).Once()
		r.gatePasses.On("Update", ctx, pass).Return(nil).Once()
		r.vehicles.On("GetForUpdate", ctx, tenant, v.ID()).Return(v, nil).Once()
		docs := new(MockDocumentStore)
		docs.On("DocumentExists", ctx, tenant, v.ID(), ports.DocumentTripInvoice).Return(false, nil).Once()

		_, err = commands.NewMoveThroughGateCommandHandler(r.gateFactory(), docs, nil).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
		assert.Equal(t, vehicle.LoadingComplete, v.Status())
		r.assert(t)
		docs.AssertExpectations(t)
	})

	t.Run("gate-out before gate-in should fail", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		pass := newGatePass(t, nil, &orderID)

		cmd, err := commands.NewMoveThroughGateCommand(callerWith(t, kernel.RoleSecurity), pass.ID(), commands.DirectionOut, t0)
		require.NoError(t, err)

		r := newRepos()
		r.expectAbortedTx(ctx)
		r.gatePasses.On("Get", ctx, tenant, pass.ID()).Return(pass, nil).Once()

		_, err = commands.NewMoveThroughGateCommandHandler(r.gateFactory(), new(MockDocumentStore), nil).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
		r.assert(t)
	})

	t.Run("pass without vehicle should move its order", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, order.Arrived)
		orderID := o.ID()
		pass := newGatePass(t, nil, &orderID)

		cmd, err := commands.NewMoveThroughGateCommand(callerWith(t, kernel.RoleSecurity), pass.ID(), commands.DirectionIn, t0)
		require.NoError(t, err)

		r := newRepos()
		r.expectTx(ctx, nil)
		r.gatePasses.On("Get", ctx, tenant, pass.ID()).Return(pass, nil).Once()
		r.gatePasses.On("Update", ctx, pass).Return(nil).Once()
		r.orders.On("Get", ctx, tenant, o.ID()).Return(o, nil).Once()
		r.orders.On("Update", ctx, o).Return(nil).Once()

		_, err = commands.NewMoveThroughGateCommandHandler(r.gateFactory(), new(MockDocumentStore), nil).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, order.GateIn, o.Status())
		r.assert(t)
	})
}

func TestParseGateDirection(t *testing.T) {
	d, err := commands.ParseGateDirection(" out ")
	require.NoError(t, err)
	assert.Equal(t, commands.DirectionOut, d)

	_, err = commands.ParseGateDirection("sideways")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestDiscardGatePassCommandHandler_Handle(t *testing.T) {
	t.Run("pass of an assigned vehicle should be deleted", func(t *testing.T) {
		ctx := t.Context()
		v := newVehicle(t, vehicle.Assigned)
		vehicleID := v.ID()
		pass := newGatePass(t, &vehicleID, nil)

		cmd, err := commands.NewDeleteGatePassCommand(callerWith(t, kernel.RoleSecurity), pass.ID())
		require.NoError(t, err)

		r := newRepos()
		r.expectTx(ctx, nil)
		r.gatePasses.On("Get", ctx, tenant, pass.ID()).Return(pass, nil).Once()
		r.vehicles.On("Get", ctx, tenant, v.ID()).Return(v, nil).Once()
		r.gatePasses.On("Delete", ctx, tenant, pass.ID()).Return(nil).Once()

		err = commands.NewDiscardGatePassCommandHandler(r.gateFactory()).Handle(ctx, cmd)
		require.NoError(t, err)
		r.assert(t)
	})

	t.Run("pass of an arrived vehicle should be kept", func(t *testing.T) {
		ctx := t.Context()
		v := newVehicle(t, vehicle.Arrived)
		vehicleID := v.ID()
		pass := newGatePass(t, &vehicleID, nil)

		cmd, err := commands.NewDeleteGatePassCommand(callerWith(t, kernel.RoleSecurity), pass.ID())
		require.NoError(t, err)

		r := newRepos()
		r.expectAbortedTx(ctx)
		r.gatePasses.On("Get", ctx, tenant, pass.ID()).Return(pass, nil).Once()
		r.vehicles.On("Get", ctx, tenant, v.ID()).Return(v, nil).Once()

		err = commands.NewDiscardGatePassCommandHandler(r.gateFactory()).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
		r.gatePasses.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		r.assert(t)
	})

	t.Run("cancel should keep the pass as CANCELLED", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		pass := newGatePass(t, nil, &orderID)

		cmd, err := commands.NewCancelGatePassCommand(callerWith(t, kernel.RoleSecurity), pass.ID())
		require.NoError(t, err)

		r := newRepos()
		r.expectTx(ctx, nil)
		r.gatePasses.On("Get", ctx, tenant, pass.ID()).Return(pass, nil).Once()
		r.gatePasses.On("Update", ctx, pass).Return(nil).Once()

		err = commands.NewDiscardGatePassCommandHandler(r.gateFactory()).Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, gatepass.Cancelled, pass.Status())
		r.assert(t)
	})
}
