package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetVehicleOrdersQueryIsNotConstructed = errors.New(
		"GetVehicleOrdersQuery must be created via NewGetVehicleOrdersQuery constructor",
	)
)

// GetVehicleOrdersQuery lists the orders carried by a vehicle with their cost split.
type GetVehicleOrdersQuery struct {
	tenantID  kernel.UUID
	vehicleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetVehicleOrdersQuery(tenantID, vehicleID kernel.UUID) (GetVehicleOrdersQuery, error) {
	if err := errors.Join(tenantID.Validate(), vehicleID.Validate()); err != nil {
		return GetVehicleOrdersQuery{}, err
	}

	return GetVehicleOrdersQuery{
		tenantID:  tenantID,
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetVehicleOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetVehicleOrdersQueryIsNotConstructed)
}

func (q GetVehicleOrdersQuery) TenantID() kernel.UUID { return q.tenantID }

func (q GetVehicleOrdersQuery) VehicleID() kernel.UUID { return q.vehicleID }

// GetVehicleOrdersQueryResponse is one linked order. Profit is nil until the
// order is COMPLETED or INVOICED.
type GetVehicleOrdersQueryResponse struct {
	ID          kernel.UUID
	SoNumber    string
	Status      order.Status
	FreightCost decimal.Decimal
	VehicleCost decimal.Decimal
	Profit      *decimal.Decimal
}
