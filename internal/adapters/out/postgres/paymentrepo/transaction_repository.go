package paymentrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBankTransactionRepository implements ports.BankTransactionRepository using GORM.
type GormBankTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormBankTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormBankTransactionRepository {
	return &GormBankTransactionRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBankTransactionRepository) Add(ctx context.Context, aggregate *payment.BankTransaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := transactionFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("transactionCode", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBankTransactionRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*payment.BankTransaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BankTransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bankTransaction", id.String())
		}
		return nil, err
	}

	return transactionToDomain(dto)
}

func (r *GormBankTransactionRepository) GetForUpdate(
	ctx context.Context,
	tenantID kernel.UUID,
	ids []kernel.UUID,
) (map[kernel.UUID]*payment.BankTransaction, error) {
	return r.getMany(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, ids)
}

func (r *GormBankTransactionRepository) GetMany(
	ctx context.Context,
	tenantID kernel.UUID,
	ids []kernel.UUID,
) (map[kernel.UUID]*payment.BankTransaction, error) {
	return r.getMany(r.db.WithContext(ctx), tenantID, ids)
}

func (r *GormBankTransactionRepository) getMany(
	db *gorm.DB,
	tenantID kernel.UUID,
	ids []kernel.UUID,
) (map[kernel.UUID]*payment.BankTransaction, error) {
	found := make(map[kernel.UUID]*payment.BankTransaction, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var dtos []BankTransactionDTO
	err := db.Where("tenant_id = ? AND id IN ?", tenantID.Bytes(), rawIDs(ids)).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		tx, err := transactionToDomain(dto)
		if err != nil {
			return nil, err
		}
		found[tx.ID()] = tx
	}

	return found, nil
}
