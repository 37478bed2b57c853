// Package gatepassrepo persists gate passes.
package gatepassrepo

import (
	"time"

	"logistics/internal/core/domain/model/gatepass"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// GatePassDTO represents the database structure for persisting gate passes.
type GatePassDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	VehicleID *uuid.UUID `gorm:"type:uuid;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	Status    int        `gorm:"not null"`
	CheckInAt time.Time  `gorm:"not null"`
	GateInAt  *time.Time
	GateOutAt *time.Time
}

func (GatePassDTO) TableName() string {
	return "gate_passes"
}

func fromDomain(g *gatepass.GatePass) GatePassDTO {
	return GatePassDTO{
		ID:        g.ID().Bytes(),
		TenantID:  g.TenantID().Bytes(),
		VehicleID: kernel.OptionalBytes(g.VehicleID()),
		OrderID:   kernel.OptionalBytes(g.OrderID()),
		Status:    int(g.Status()),
		CheckInAt: g.CheckInAt(),
		GateInAt:  g.GateInAt(),
		GateOutAt: g.GateOutAt(),
	}
}

func toDomain(dto GatePassDTO) (*gatepass.GatePass, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.OptionalUUIDFromBytes(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.OptionalUUIDFromBytes(dto.OrderID)
	if err != nil {
		return nil, err
	}

	return gatepass.RestoreGatePass(gatepass.Snapshot{
		ID:        id,
		TenantID:  tenantID,
		VehicleID: vehicleID,
		OrderID:   orderID,
		Status:    gatepass.Status(dto.Status),
		CheckInAt: dto.CheckInAt,
		GateInAt:  dto.GateInAt,
		GateOutAt: dto.GateOutAt,
	})
}
