package queries

import (
	"context"
	"database/sql"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetVehicleLedgerQueryHandler reads the request totals straight from the ledger tables.
type GetVehicleLedgerQueryHandler struct {
	db *gorm.DB
}

func NewGetVehicleLedgerQueryHandler(db *gorm.DB) GetVehicleLedgerQueryHandler {
	return GetVehicleLedgerQueryHandler{db: db}
}

// Handle returns the requests in the order they were raised.
func (h GetVehicleLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetVehicleLedgerQuery,
) ([]GetVehicleLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lines := make([]GetVehicleLedgerQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			pr.id,
			pr.transaction_type,
			pr.status,
			pr.requested_amount,
			COALESCE(SUM(pa.amount), 0) AS allocated,
			pr.payment_date
		FROM payment_requests pr
		LEFT JOIN payment_allocations pa ON pa.request_id = pr.id
		WHERE pr.tenant_id = ? AND pr.vehicle_id = ?
		GROUP BY pr.id, pr.transaction_type, pr.status, pr.requested_amount, pr.payment_date, pr.created_at
		ORDER BY pr.created_at, pr.id
	`, query.TenantID().Bytes(), query.VehicleID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                   uuid.UUID
			txType, status       int
			requested, allocated decimal.Decimal
			paymentDate          sql.NullTime
		)

		if err = rows.Scan(&id, &txType, &status, &requested, &allocated, &paymentDate); err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		line := GetVehicleLedgerQueryResponse{
			ID:              requestID,
			TransactionType: payment.TransactionType(txType),
			Status:          payment.RequestStatus(status),
			RequestedAmount: requested,
			Allocated:       allocated,
			Outstanding:     decimal.Max(requested.Sub(allocated), decimal.Zero),
		}
		if paymentDate.Valid {
			d := paymentDate.Time.UTC()
			line.PaymentDate = &d
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
