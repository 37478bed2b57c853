// Package vehiclerepo persists vehicle aggregates and the vehicle_orders join.
package vehiclerepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleDTO represents the database structure for persisting vehicle aggregates.
type VehicleDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vehicles_tenant_number,priority:1"`
	Number        string    `gorm:"size:32;not null;uniqueIndex:idx_vehicles_tenant_number,priority:2"`
	Status        int       `gorm:"not null;index"`
	InvoiceStatus int       `gorm:"not null"`
	TripReference string    `gorm:"size:64"`

	LoadingQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Expense         decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	Milestones MilestonesDTO `gorm:"embedded"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

// MilestonesDTO is embedded in the vehicles table, one nullable column per milestone.
type MilestonesDTO struct {
	AssignedAt        *time.Time
	ArrivedAt         *time.Time
	GateInAt          *time.Time
	LoadingStartAt    *time.Time
	LoadingCompleteAt *time.Time
	TripInvoicedAt    *time.Time
	GateOutAt         *time.Time
	InJourneyAt       *time.Time
	ReachedAt         *time.Time
	UnloadedAt        *time.Time
	CompletedAt       *time.Time
	InvoicedAt        *time.Time
	CancelledAt       *time.Time
}

// VehicleOrderDTO links an order to the vehicle carrying it.
type VehicleOrderDTO struct {
	VehicleID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null"`
	LinkedAt  time.Time `gorm:"not null"`
}

func (VehicleOrderDTO) TableName() string {
	return "vehicle_orders"
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	m := v.Milestones()
	return VehicleDTO{
		ID:              v.ID().Bytes(),
		TenantID:        v.TenantID().Bytes(),
		Number:          v.Number(),
		Status:          int(v.Status()),
		InvoiceStatus:   int(v.InvoiceStatus()),
		TripReference:   v.TripReference(),
		LoadingQuantity: v.LoadingQuantity(),
		Amount:          v.Amount(),
		Expense:         v.Expense(),
		Milestones:      MilestonesDTO(m),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(vehicle.Snapshot{
		ID:              id,
		TenantID:        tenantID,
		Number:          dto.Number,
		Status:          vehicle.Status(dto.Status),
		InvoiceStatus:   vehicle.InvoiceStatus(dto.InvoiceStatus),
		TripReference:   dto.TripReference,
		LoadingQuantity: dto.LoadingQuantity,
		Amount:          dto.Amount,
		Expense:         dto.Expense,
		Milestones:      vehicle.Milestones(dto.Milestones),
	})
}
