package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordBankTransactionCommandIsNotConstructed = errors.New(
	"RecordBankTransactionCommand must be created via NewRecordBankTransactionCommand constructor",
)

// RecordBankTransactionCommand registers money paid out to a beneficiary.
type RecordBankTransactionCommand struct {
	caller          kernel.Caller
	transactionID   kernel.UUID
	code            string
	beneficiaryID   string
	totalPaidAmount decimal.Decimal
	transactionDate time.Time
	proofDocument   string

	guard guard.ConstructorGuard
}

func NewRecordBankTransactionCommand(
	caller kernel.Caller,
	transactionID kernel.UUID,
	code, beneficiaryID string,
	totalPaidAmount decimal.Decimal,
	transactionDate time.Time,
	proofDocument string,
) (RecordBankTransactionCommand, error) {
	if err := errors.Join(caller.Validate(), transactionID.Validate()); err != nil {
		return RecordBankTransactionCommand{}, err
	}
	if !caller.CanSetFinancials() {
		return RecordBankTransactionCommand{}, errs.NewForbiddenError("record bank transaction", caller.Role().String())
	}

	return RecordBankTransactionCommand{
		caller:          caller,
		transactionID:   transactionID,
		code:            code,
		beneficiaryID:   beneficiaryID,
		totalPaidAmount: totalPaidAmount,
		transactionDate: transactionDate,
		proofDocument:   proofDocument,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c RecordBankTransactionCommand) Validate() error {
	return c.guard.Validate(ErrRecordBankTransactionCommandIsNotConstructed)
}

func (c RecordBankTransactionCommand) Caller() kernel.Caller { return c.caller }
func (c RecordBankTransactionCommand) TransactionID() kernel.UUID { return c.transactionID }
func (c RecordBankTransactionCommand) Code() string { return c.code }
func (c RecordBankTransactionCommand) BeneficiaryID() string { return c.beneficiaryID }
func (c RecordBankTransactionCommand) TotalPaidAmount() decimal.Decimal { return c.totalPaidAmount }
func (c RecordBankTransactionCommand) TransactionDate() time.Time { return c.transactionDate }
func (c RecordBankTransactionCommand) ProofDocument() string { return c.proofDocument }
