package gatepassrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/gatepass"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormGatePassRepository implements ports.GatePassRepository using GORM.
type GormGatePassRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormGatePassRepository(db *gorm.DB, tracker aggregateTracker) *GormGatePassRepository {
	return &GormGatePassRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormGatePassRepository) Add(ctx context.Context, aggregate *gatepass.GatePass) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormGatePassRepository) Update(ctx context.Context, aggregate *gatepass.GatePass) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&GatePassDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("gatePass", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormGatePassRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*gatepass.GatePass, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GatePassDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("gatePass", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormGatePassRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Delete(&GatePassDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("gatePass", id.String())
	}
	return nil
}
