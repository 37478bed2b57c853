package paymentrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormPaymentRequestRepository implements ports.PaymentRequestRepository using GORM.
type GormPaymentRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormPaymentRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRequestRepository {
	return &GormPaymentRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPaymentRequestRepository) Add(ctx context.Context, aggregate *payment.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := requestFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPaymentRequestRepository) Update(ctx context.Context, aggregate *payment.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := requestFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PaymentRequestDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("paymentRequest", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPaymentRequestRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*payment.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("paymentRequest", id.String())
		}
		return nil, err
	}

	return requestToDomain(dto)
}

// GetForUpdate locks the rows in id order so two batches never deadlock on each other.
func (r *GormPaymentRequestRepository) GetForUpdate(
	ctx context.Context,
	tenantID kernel.UUID,
	ids []kernel.UUID,
) ([]*payment.Request, error) {
	if len(ids) == 0 {
		return []*payment.Request{}, nil
	}

	var dtos []PaymentRequestDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id IN ?", tenantID.Bytes(), rawIDs(ids)).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]PaymentRequestDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	requests := make([]*payment.Request, 0, len(ids))
	for _, id := range ids {
		dto, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("paymentRequest", id.String())
		}
		req, err := requestToDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func (r *GormPaymentRequestRepository) ListByVehicle(ctx context.Context, tenantID, vehicleID kernel.UUID) ([]*payment.Request, error) {
	var dtos []PaymentRequestDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND vehicle_id = ?", tenantID.Bytes(), vehicleID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*payment.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, err := requestToDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}
