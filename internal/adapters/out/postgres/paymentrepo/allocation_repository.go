package paymentrepo

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAllocationRepository implements ports.AllocationRepository using GORM.
type GormAllocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormAllocationRepository(db *gorm.DB, tracker aggregateTracker) *GormAllocationRepository {
	return &GormAllocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the allocations in one statement.
func (r *GormAllocationRepository) Add(ctx context.Context, allocations ...*payment.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}

	dtos := make([]AllocationDTO, 0, len(allocations))
	for _, a := range allocations {
		if err := a.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, allocationFromDomain(a))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for _, a := range allocations {
		r.tracker.TrackAggregate(a.ID(), a)
	}
	return nil
}

func (r *GormAllocationRepository) ListByRequests(
	ctx context.Context,
	tenantID kernel.UUID,
	requestIDs []kernel.UUID,
) ([]*payment.Allocation, error) {
	if len(requestIDs) == 0 {
		return []*payment.Allocation{}, nil
	}

	var dtos []AllocationDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND request_id IN ?", tenantID.Bytes(), rawIDs(requestIDs)).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	allocations := make([]*payment.Allocation, 0, len(dtos))
	for _, dto := range dtos {
		a, err := allocationToDomain(dto)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}

	return allocations, nil
}

type drawnRow struct {
	TransactionID uuid.UUID
	Total         decimal.Decimal
}

func (r *GormAllocationRepository) SumByTransactions(
	ctx context.Context,
	tenantID kernel.UUID,
	transactionIDs []kernel.UUID,
) (map[kernel.UUID]decimal.Decimal, error) {
	sums := make(map[kernel.UUID]decimal.Decimal, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return sums, nil
	}

	var rows []drawnRow
	err := r.db.WithContext(ctx).Model(&AllocationDTO{}).
		Select("transaction_id, SUM(amount) AS total").
		Where("tenant_id = ? AND transaction_id IN ?", tenantID.Bytes(), rawIDs(transactionIDs)).
		Group("transaction_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.TransactionID[:])
		if err != nil {
			return nil, err
		}
		sums[id] = row.Total
	}

	return sums, nil
}

