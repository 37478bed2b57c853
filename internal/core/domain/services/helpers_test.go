package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	t0     = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	tenant = kernel.NewUUID()
)

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

func newVehicle(t *testing.T) *vehicle.Vehicle {
	t.Helper()

	v, err := vehicle.NewVehicle(kernel.NewUUID(), tenant, "MP09XY0001", "TRIP-1", t0)
	require.NoError(t, err)
	require.NoError(t, v.SetLoadingQuantity(decimal.NewFromInt(100)))
	return v
}

func newRequest(t *testing.T, typ payment.TransactionType, amount int64, beneficiary string) *payment.Request {
	t.Helper()

	r, err := payment.NewRequest(kernel.NewUUID(), tenant, kernel.NewUUID(), nil, typ,
		decimal.NewFromInt(amount), beneficiary, t0)
	require.NoError(t, err)
	return r
}

func newTransaction(t *testing.T, total int64, beneficiary string, date time.Time) *payment.BankTransaction {
	t.Helper()

	tx, err := payment.NewBankTransaction(kernel.NewUUID(), tenant, "UTR-"+kernel.NewUUID().String()[:8],
		beneficiary, decimal.NewFromInt(total), date, "")
	require.NoError(t, err)
	return tx
}

func legOf(tx *payment.BankTransaction) services.LedgerLeg {
	return services.LedgerLeg{TransactionID: tx.ID(), Transaction: tx, Drawn: decimal.Zero}
}
