package commands

import (
	"context"

	"logistics/internal/core/domain/model/payment"
)

type RecordBankTransactionCommandHandler struct {
	uowFactory UoWFactory
}

func NewRecordBankTransactionCommandHandler(uowFactory UoWFactory) RecordBankTransactionCommandHandler {
	return RecordBankTransactionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the transaction. A code already used by the tenant is a conflict.
func (h RecordBankTransactionCommandHandler) Handle(ctx context.Context, cmd RecordBankTransactionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	tx, err := payment.NewBankTransaction(
		cmd.TransactionID(),
		cmd.Caller().TenantID(),
		cmd.Code(),
		cmd.BeneficiaryID(),
		cmd.TotalPaidAmount(),
		cmd.TransactionDate(),
		cmd.ProofDocument(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BankTransactionRepository().Add(ctx, tx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
