// Package paymentrepo persists the ledger: payment requests, bank transactions
// and the allocations between them.
package paymentrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRequestDTO represents the database structure for payment requests.
type PaymentRequestDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	VehicleID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID         *uuid.UUID      `gorm:"type:uuid"`
	TransactionType int             `gorm:"not null"`
	RequestedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BeneficiaryID   string          `gorm:"size:64;not null;index"`
	Status          int             `gorm:"not null;index"`
	PaymentDate     *time.Time
	CreatedAt       time.Time `gorm:"not null"`
}

func (PaymentRequestDTO) TableName() string {
	return "payment_requests"
}

// BankTransactionDTO represents the database structure for bank transactions.
// The transaction code is unique per tenant.
type BankTransactionDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bank_transactions_tenant_code,priority:1"`
	Code            string          `gorm:"size:64;not null;uniqueIndex:idx_bank_transactions_tenant_code,priority:2"`
	BeneficiaryID   string          `gorm:"size:64;not null;index"`
	TotalPaidAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TransactionDate time.Time       `gorm:"not null"`
	ProofDocument   string          `gorm:"size:255"`
}

func (BankTransactionDTO) TableName() string {
	return "bank_transactions"
}

// AllocationDTO represents one ledger entry. Rows are only ever inserted.
type AllocationDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null"`
	RequestID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

func (AllocationDTO) TableName() string {
	return "payment_allocations"
}

func requestFromDomain(r *payment.Request) PaymentRequestDTO {
	return PaymentRequestDTO{
		ID:              r.ID().Bytes(),
		TenantID:        r.TenantID().Bytes(),
		VehicleID:       r.VehicleID().Bytes(),
		OrderID:         kernel.OptionalBytes(r.OrderID()),
		TransactionType: int(r.TransactionType()),
		RequestedAmount: r.RequestedAmount(),
		BeneficiaryID:   r.BeneficiaryID(),
		Status:          int(r.Status()),
		PaymentDate:     r.PaymentDate(),
		CreatedAt:       r.CreatedAt(),
	}
}

func requestToDomain(dto PaymentRequestDTO) (*payment.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.OptionalUUIDFromBytes(dto.OrderID)
	if err != nil {
		return nil, err
	}

	return payment.RestoreRequest(payment.RequestSnapshot{
		ID:              id,
		TenantID:        tenantID,
		VehicleID:       vehicleID,
		OrderID:         orderID,
		TransactionType: payment.TransactionType(dto.TransactionType),
		RequestedAmount: dto.RequestedAmount,
		BeneficiaryID:   dto.BeneficiaryID,
		Status:          payment.RequestStatus(dto.Status),
		PaymentDate:     dto.PaymentDate,
		CreatedAt:       dto.CreatedAt,
	})
}

func transactionFromDomain(t *payment.BankTransaction) BankTransactionDTO {
	return BankTransactionDTO{
		ID:              t.ID().Bytes(),
		TenantID:        t.TenantID().Bytes(),
		Code:            t.Code(),
		BeneficiaryID:   t.BeneficiaryID(),
		TotalPaidAmount: t.TotalPaidAmount(),
		TransactionDate: t.TransactionDate(),
		ProofDocument:   t.ProofDocument(),
	}
}

func transactionToDomain(dto BankTransactionDTO) (*payment.BankTransaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return payment.NewBankTransaction(id, tenantID, dto.Code, dto.BeneficiaryID, dto.TotalPaidAmount,
		dto.TransactionDate, dto.ProofDocument)
}

func allocationFromDomain(a *payment.Allocation) AllocationDTO {
	return AllocationDTO{
		ID:            a.ID().Bytes(),
		TenantID:      a.TenantID().Bytes(),
		RequestID:     a.RequestID().Bytes(),
		TransactionID: a.TransactionID().Bytes(),
		Amount:        a.Amount(),
		CreatedAt:     a.CreatedAt(),
	}
}

func allocationToDomain(dto AllocationDTO) (*payment.Allocation, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.TenantID, dto.RequestID, dto.TransactionID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return payment.NewAllocation(ids[0], ids[1], ids[2], ids[3], dto.Amount, dto.CreatedAt)
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}
