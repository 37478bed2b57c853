package vehiclerepo

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVehicleRepository implements ports.VehicleRepository using GORM.
type GormVehicleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormVehicleRepository(db *gorm.DB, tracker aggregateTracker) *GormVehicleRepository {
	return &GormVehicleRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("vehicleNumber", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VehicleDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormVehicleRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*vehicle.Vehicle, error) {
	return r.get(r.db.WithContext(ctx), tenantID, id)
}

// GetForUpdate reads the vehicle with SELECT ... FOR UPDATE.
func (r *GormVehicleRepository) GetForUpdate(ctx context.Context, tenantID, id kernel.UUID) (*vehicle.Vehicle, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, id)
}

func (r *GormVehicleRepository) get(db *gorm.DB, tenantID, id kernel.UUID) (*vehicle.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := db.First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormVehicleRepository) FindByNumber(ctx context.Context, tenantID kernel.UUID, number string) (*vehicle.Vehicle, error) {
	var dto VehicleDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND number = ?", tenantID.Bytes(), vehicle.NormalizeNumber(number)).
		Limit(1).
		Find(&dto).Error
	if err != nil {
		return nil, err
	}
	if dto.Number == "" {
		return nil, nil
	}

	return toDomain(dto)
}

func (r *GormVehicleRepository) LinkOrders(ctx context.Context, tenantID, vehicleID kernel.UUID, orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	links := make([]VehicleOrderDTO, 0, len(orderIDs))
	for _, id := range orderIDs {
		links = append(links, VehicleOrderDTO{
			VehicleID: vehicleID.Bytes(),
			OrderID:   id.Bytes(),
			TenantID:  tenantID.Bytes(),
			LinkedAt:  now,
		})
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *GormVehicleRepository) ListAwaitingCompletion(
	ctx context.Context,
	after *kernel.UUID,
	limit int,
) ([]*vehicle.Vehicle, error) {
	settling := []int{int(payment.TypeBalanceShipping), int(payment.TypeFullShippingCharges)}

	var dtos []VehicleDTO
	err := page(r.db.WithContext(ctx), after, limit).
		Where("status < ?", int(vehicle.Completed)).
		Where("EXISTS (SELECT 1 FROM payment_requests pr WHERE pr.vehicle_id = vehicles.id AND pr.status = ? AND pr.transaction_type IN ?)",
			int(payment.StatusCompleted), settling).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormVehicleRepository) ListActive(ctx context.Context, after *kernel.UUID, limit int) ([]*vehicle.Vehicle, error) {
	var dtos []VehicleDTO
	err := page(r.db.WithContext(ctx), after, limit).
		Where("status BETWEEN ? AND ?", int(vehicle.Assigned), int(vehicle.InJourney)).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// page orders by ID and resumes after the last ID of the previous page.
func page(tx *gorm.DB, after *kernel.UUID, limit int) *gorm.DB {
	if after != nil {
		tx = tx.Where("id > ?", after.Bytes())
	}
	return tx.Order("id").Limit(limit)
}

func toDomainList(dtos []VehicleDTO) ([]*vehicle.Vehicle, error) {
	vehicles := make([]*vehicle.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}
