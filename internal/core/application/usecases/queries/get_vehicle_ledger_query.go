package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetVehicleLedgerQueryIsNotConstructed = errors.New(
		"GetVehicleLedgerQuery must be created via NewGetVehicleLedgerQuery constructor",
	)
)

// GetVehicleLedgerQuery lists the payment requests raised for a vehicle together
// with what the ledger has allocated to each of them.
//
// Example:
//
//	query, err := NewGetVehicleLedgerQuery(tenantID, vehicleID)
//	if err != nil {
//	    return err
//	}
//	lines, err := NewGetVehicleLedgerQueryHandler(db).Handle(ctx, query)
type GetVehicleLedgerQuery struct {
	tenantID  kernel.UUID
	vehicleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetVehicleLedgerQuery(tenantID, vehicleID kernel.UUID) (GetVehicleLedgerQuery, error) {
	if err := errors.Join(tenantID.Validate(), vehicleID.Validate()); err != nil {
		return GetVehicleLedgerQuery{}, err
	}

	return GetVehicleLedgerQuery{
		tenantID:  tenantID,
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetVehicleLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetVehicleLedgerQueryIsNotConstructed)
}

func (q GetVehicleLedgerQuery) TenantID() kernel.UUID { return q.tenantID }

func (q GetVehicleLedgerQuery) VehicleID() kernel.UUID { return q.vehicleID }

// GetVehicleLedgerQueryResponse is one payment request of the vehicle.
// Outstanding is never negative.
type GetVehicleLedgerQueryResponse struct {
	ID              kernel.UUID
	TransactionType payment.TransactionType
	Status          payment.RequestStatus
	RequestedAmount decimal.Decimal
	Allocated       decimal.Decimal
	Outstanding     decimal.Decimal
	PaymentDate     *time.Time
}
