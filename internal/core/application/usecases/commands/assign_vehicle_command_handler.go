package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"
)

// ErrTripReferenceMismatch is wrapped in the conflict returned when the orders
// of one assignment carry different trip references.
var ErrTripReferenceMismatch = errors.New("orders of one assignment must share a trip reference")

// AssignVehicleResult identifies the vehicle the orders were put on.
type AssignVehicleResult struct {
	Vehicle *vehicle.Vehicle
	Created bool
}

// AssignVehicleCommandHandler creates or reuses a vehicle, links the orders and
// moves them to VEHICLE_ASSIGNED.
type AssignVehicleCommandHandler struct {
	uowFactory FleetUoWFactory
	logger     *slog.Logger
}

func NewAssignVehicleCommandHandler(uowFactory FleetUoWFactory, logger *slog.Logger) AssignVehicleCommandHandler {
	return AssignVehicleCommandHandler{
		uowFactory: uowFactory,
		logger:     loggerOrDefault(logger),
	}
}

// Handle links every order or none. All orders must share one trip reference,
// and that reference must not conflict with the vehicle's.
func (h AssignVehicleCommandHandler) Handle(ctx context.Context, cmd AssignVehicleCommand) (AssignVehicleResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignVehicleResult{}, err
	}
	tenantID := cmd.Caller().TenantID()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignVehicleResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	vehicleRepo := uow.VehicleRepository()

	orders, err := orderRepo.GetMany(ctx, tenantID, cmd.OrderIDs())
	if err != nil {
		return AssignVehicleResult{}, err
	}

	tripReference, err := sharedTripReference(orders)
	if err != nil {
		return AssignVehicleResult{}, err
	}

	v, err := vehicleRepo.FindByNumber(ctx, tenantID, cmd.Number())
	if err != nil {
		return AssignVehicleResult{}, err
	}

	created := v == nil
	if created {
		v, err = vehicle.NewVehicle(cmd.VehicleID(), tenantID, cmd.Number(), tripReference, cmd.At())
		if err != nil {
			return AssignVehicleResult{}, err
		}
	} else if err = v.AcceptTripReference(tripReference); err != nil {
		return AssignVehicleResult{}, err
	}

	for _, o := range orders {
		if o.Status() == order.VehicleAssigned {
			continue
		}
		if err = o.TransitionTo(order.VehicleAssigned); err != nil {
			return AssignVehicleResult{}, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return AssignVehicleResult{}, err
		}
	}

	if created {
		err = vehicleRepo.Add(ctx, v)
	} else {
		err = vehicleRepo.Update(ctx, v)
	}
	if err != nil {
		return AssignVehicleResult{}, err
	}

	if err = vehicleRepo.LinkOrders(ctx, tenantID, v.ID(), cmd.OrderIDs()); err != nil {
		return AssignVehicleResult{}, err
	}

	// A reused vehicle may already be past ASSIGNED; bring the new orders along.
	if v.Status() != vehicle.Assigned {
		if _, err = syncLinkedOrders(ctx, orderRepo, v, h.logger); err != nil {
			return AssignVehicleResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignVehicleResult{}, err
	}

	return AssignVehicleResult{Vehicle: v, Created: created}, nil
}

// sharedTripReference returns the one non-blank trip reference of the orders,
// or "" when none carries one.
func sharedTripReference(orders []*order.Order) (string, error) {
	ref := ""
	for _, o := range orders {
		r := strings.TrimSpace(o.TripReference())
		switch {
		case r == "" || r == ref:
		case ref == "":
			ref = r
		default:
			return "", errs.NewConflictError("tripReference", fmt.Errorf("%w: %q and %q", ErrTripReferenceMismatch, ref, r))
		}
	}
	return ref, nil
}
