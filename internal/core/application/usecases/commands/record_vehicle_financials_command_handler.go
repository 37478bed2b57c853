package commands

import (
	"context"

	"logistics/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// costPrecision is the number of decimal places of an order's vehicle cost share.
const costPrecision = 4

// RecordVehicleFinancialsCommandHandler stores vehicle financials and spreads a
// new amount over the orders on the vehicle.
type RecordVehicleFinancialsCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewRecordVehicleFinancialsCommandHandler(uowFactory FleetUoWFactory) RecordVehicleFinancialsCommandHandler {
	return RecordVehicleFinancialsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle updates the vehicle. When the amount changes, every non-frozen linked
// order receives an equal share as its vehicle cost; the last share absorbs the rounding.
func (h RecordVehicleFinancialsCommandHandler) Handle(ctx context.Context, cmd RecordVehicleFinancialsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	tenantID := cmd.Caller().TenantID()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vehicleRepo := uow.VehicleRepository()
	v, err := vehicleRepo.GetForUpdate(ctx, tenantID, cmd.VehicleID())
	if err != nil {
		return err
	}

	if err = v.SetFinancials(cmd.Amount(), cmd.Expense()); err != nil {
		return err
	}

	if err = vehicleRepo.Update(ctx, v); err != nil {
		return err
	}

	if cmd.Amount() != nil {
		orderRepo := uow.OrderRepository()
		linked, listErr := orderRepo.ListByVehicle(ctx, tenantID, v.ID())
		if listErr != nil {
			return listErr
		}

		active := make([]*order.Order, 0, len(linked))
		for _, o := range linked {
			if !o.IsFrozen() {
				active = append(active, o)
			}
		}

		for i, share := range splitAmount(*cmd.Amount(), len(active)) {
			if err = active[i].AssignVehicleCost(share); err != nil {
				return err
			}
			if err = orderRepo.Update(ctx, active[i]); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

// splitAmount divides amount into n shares that add up to amount exactly.
func splitAmount(amount decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	share := amount.Div(decimal.NewFromInt(int64(n))).Truncate(costPrecision)
	shares := make([]decimal.Decimal, n)
	rest := amount
	for i := range n - 1 {
		shares[i] = share
		rest = rest.Sub(share)
	}
	shares[n-1] = rest
	return shares
}
