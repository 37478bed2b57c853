package queries

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetVehicleOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetVehicleOrdersQueryHandler(db *gorm.DB) GetVehicleOrdersQueryHandler {
	return GetVehicleOrdersQueryHandler{db: db}
}

// Handle returns the linked orders sorted by order number.
func (h GetVehicleOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetVehicleOrdersQuery,
) ([]GetVehicleOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetVehicleOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.so_number,
			o.status,
			o.freight_cost,
			o.vehicle_cost,
			o.profit
		FROM orders o
		JOIN vehicle_orders vo ON vo.order_id = o.id
		WHERE vo.tenant_id = ? AND vo.vehicle_id = ?
		ORDER BY o.so_number
	`, query.TenantID().Bytes(), query.VehicleID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            uuid.UUID
			soNumber      string
			status        int
			freight, cost decimal.Decimal
			profit        decimal.NullDecimal
		)

		if err = rows.Scan(&id, &soNumber, &status, &freight, &cost, &profit); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp := GetVehicleOrdersQueryResponse{
			ID:          orderID,
			SoNumber:    soNumber,
			Status:      order.Status(status),
			FreightCost: freight,
			VehicleCost: cost,
		}
		if profit.Valid {
			p := profit.Decimal
			resp.Profit = &p
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
