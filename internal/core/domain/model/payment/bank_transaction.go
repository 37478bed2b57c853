package payment

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrBankTransactionIsNotConstructed = errors.New("BankTransaction must be created via NewBankTransaction constructor")
	ErrTransactionCodeIsRequired       = errs.NewValueIsRequiredError("transactionCode")
)

// BankTransaction is a recorded payment instrument whose funds are split
// across payment requests through allocations.
type BankTransaction struct {
	id              kernel.UUID
	tenantID        kernel.UUID
	code            string
	beneficiaryID   string
	totalPaidAmount decimal.Decimal
	transactionDate time.Time
	proofDocument   string

	guard guard.ConstructorGuard
}

func NewBankTransaction(
	id, tenantID kernel.UUID,
	code, beneficiaryID string,
	totalPaidAmount decimal.Decimal,
	transactionDate time.Time,
	proofDocument string,
) (*BankTransaction, error) {
	code = strings.TrimSpace(code)
	beneficiaryID = strings.TrimSpace(beneficiaryID)

	var codeErr, beneficiaryErr error
	if code == "" {
		codeErr = ErrTransactionCodeIsRequired
	}
	if beneficiaryID == "" {
		beneficiaryErr = ErrBeneficiaryIsRequired
	}
	var dateErr error
	if transactionDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("transactionDate")
	}

	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		codeErr,
		beneficiaryErr,
		kernel.ValidatePositiveAmount("totalPaidAmount", totalPaidAmount),
		dateErr,
	); err != nil {
		return nil, err
	}

	return &BankTransaction{
		id:              id,
		tenantID:        tenantID,
		code:            code,
		beneficiaryID:   beneficiaryID,
		totalPaidAmount: totalPaidAmount,
		transactionDate: transactionDate.UTC(),
		proofDocument:   strings.TrimSpace(proofDocument),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (t *BankTransaction) Validate() error {
	if t == nil {
		return ErrBankTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrBankTransactionIsNotConstructed)
}

func (t *BankTransaction) ID() kernel.UUID { return t.id }
func (t *BankTransaction) TenantID() kernel.UUID { return t.tenantID }
func (t *BankTransaction) Code() string { return t.code }
func (t *BankTransaction) BeneficiaryID() string { return t.beneficiaryID }
func (t *BankTransaction) TotalPaidAmount() decimal.Decimal { return t.totalPaidAmount }
func (t *BankTransaction) TransactionDate() time.Time { return t.transactionDate }
func (t *BankTransaction) ProofDocument() string { return t.proofDocument }

// Remaining is the capacity left after allocated has been drawn.
func (t *BankTransaction) Remaining(allocated decimal.Decimal) decimal.Decimal {
	return t.totalPaidAmount.Sub(allocated)
}
