package commands_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var tenant = kernel.NewUUID()

func callerWith(t *testing.T, role kernel.Role) kernel.Caller {
	t.Helper()

	c, err := kernel.NewCaller(tenant, role)
	require.NoError(t, err)
	return c
}

func readyFields(so string) order.EligibilityFields {
	return order.EligibilityFields{
		SoNumber:        so,
		CaseCount:       10,
		CaseLot:         "LOT",
		DestinationTown: "Indore",
		PinCode:         "452001",
		TruckSize:       20,
		TruckType:       "CLOSED",
	}
}

func newOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), tenant, readyFields("SO-"+kernel.NewUUID().String()[:8]), "",
		decimal.NewFromInt(1000), order.SourceManual, status)
	require.NoError(t, err)
	return o
}

// newVehicle returns a vehicle with a loading quantity of 100 and an amount of 10000, moved to status.
func newVehicle(t *testing.T, status vehicle.Status) *vehicle.Vehicle {
	t.Helper()

	v, err := vehicle.NewVehicle(kernel.NewUUID(), tenant, "MP09XY0001", "TRIP-1", t0)
	require.NoError(t, err)
	require.NoError(t, v.SetLoadingQuantity(decimal.NewFromInt(100)))
	amount := decimal.NewFromInt(10000)
	require.NoError(t, v.SetFinancials(&amount, nil))
	require.NoError(t, v.TransitionTo(status, t0))
	return v
}

func newRequest(t *testing.T, vehicleID kernel.UUID, typ payment.TransactionType, amount int64) *payment.Request {
	t.Helper()

	r, err := payment.NewRequest(kernel.NewUUID(), tenant, vehicleID, nil, typ, decimal.NewFromInt(amount), "BEN-1", t0)
	require.NoError(t, err)
	return r
}

func newTransaction(t *testing.T, total int64) *payment.BankTransaction {
	t.Helper()

	tx, err := payment.NewBankTransaction(kernel.NewUUID(), tenant, "UTR-"+kernel.NewUUID().String()[:8],
		"BEN-1", decimal.NewFromInt(total), t0, "")
	require.NoError(t, err)
	return tx
}

func ptr[T any](v T) *T {
	return &v
}
