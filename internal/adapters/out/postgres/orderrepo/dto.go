// Package orderrepo persists order aggregates with GORM. Provenance is stored
// as a JSON column keyed by field name.
package orderrepo

import (
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number is unique per tenant.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_orders_tenant_so_number,priority:1"`
	SoNumber       string    `gorm:"size:64;not null;uniqueIndex:idx_orders_tenant_so_number,priority:2"`
	Status         int       `gorm:"not null;index"`
	PreviousStatus *int

	CaseCount       float64
	CaseLot         string `gorm:"size:64"`
	DestinationTown string `gorm:"size:128"`
	PinCode         string `gorm:"size:16"`
	TruckSize       float64
	TruckType       string `gorm:"size:64"`
	TripReference   string `gorm:"size:64;index"`

	FreightCost decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	VehicleCost decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Profit      decimal.NullDecimal `gorm:"type:decimal(18,4)"`

	Provenance datatypes.JSONMap
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var prev *int
	if p := o.PreviousStatus(); p != nil {
		v := int(*p)
		prev = &v
	}

	var profit decimal.NullDecimal
	if p := o.Profit(); p != nil {
		profit = decimal.NewNullDecimal(*p)
	}

	provenance := datatypes.JSONMap{}
	for field, source := range o.Provenance() {
		provenance[field.String()] = source.String()
	}

	f := o.Eligibility()
	return OrderDTO{
		ID:              o.ID().Bytes(),
		TenantID:        o.TenantID().Bytes(),
		SoNumber:        f.SoNumber,
		Status:          int(o.Status()),
		PreviousStatus:  prev,
		CaseCount:       f.CaseCount,
		CaseLot:         f.CaseLot,
		DestinationTown: f.DestinationTown,
		PinCode:         f.PinCode,
		TruckSize:       f.TruckSize,
		TruckType:       f.TruckType,
		TripReference:   o.TripReference(),
		FreightCost:     o.FreightCost(),
		VehicleCost:     o.VehicleCost(),
		Profit:          profit,
		Provenance:      provenance,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var prev *order.Status
	if dto.PreviousStatus != nil {
		s := order.Status(*dto.PreviousStatus)
		prev = &s
	}

	var profit *decimal.Decimal
	if dto.Profit.Valid {
		p := dto.Profit.Decimal
		profit = &p
	}

	provenance := make(order.Provenance, len(dto.Provenance))
	for name, raw := range dto.Provenance {
		field := order.ParseField(name)
		source := order.ParseSource(fmt.Sprint(raw))
		if field == order.FieldUnknown || !source.IsValid() {
			return nil, fmt.Errorf("order %s: unreadable provenance %q=%v", id, name, raw)
		}
		provenance[field] = source
	}

	return order.RestoreOrder(order.Snapshot{
		ID:             id,
		TenantID:       tenantID,
		Status:         order.Status(dto.Status),
		PreviousStatus: prev,
		Eligibility: order.EligibilityFields{
			SoNumber:        dto.SoNumber,
			CaseCount:       dto.CaseCount,
			CaseLot:         dto.CaseLot,
			DestinationTown: dto.DestinationTown,
			PinCode:         dto.PinCode,
			TruckSize:       dto.TruckSize,
			TruckType:       dto.TruckType,
		},
		TripReference: dto.TripReference,
		FreightCost:   dto.FreightCost,
		VehicleCost:   dto.VehicleCost,
		Profit:        profit,
		Provenance:    provenance,
	})
}
