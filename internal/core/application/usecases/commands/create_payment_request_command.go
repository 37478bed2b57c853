package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreatePaymentRequestCommandIsNotConstructed = errors.New(
	"CreatePaymentRequestCommand must be created via NewCreatePaymentRequestCommand constructor",
)

// CreatePaymentRequestCommand raises a request to pay a beneficiary for a vehicle.
type CreatePaymentRequestCommand struct {
	caller          kernel.Caller
	requestID       kernel.UUID
	vehicleID       kernel.UUID
	orderID         *kernel.UUID
	transactionType payment.TransactionType
	amount          decimal.Decimal
	beneficiaryID   string
	at              time.Time

	guard guard.ConstructorGuard
}

func NewCreatePaymentRequestCommand(
	caller kernel.Caller,
	requestID, vehicleID kernel.UUID,
	orderID *kernel.UUID,
	transactionType payment.TransactionType,
	amount decimal.Decimal,
	beneficiaryID string,
	at time.Time,
) (CreatePaymentRequestCommand, error) {
	var orderErr error
	if orderID != nil {
		orderErr = orderID.Validate()
	}
	if err := errors.Join(
		caller.Validate(),
		requestID.Validate(),
		vehicleID.Validate(),
		orderErr,
		transactionType.Validate(),
	); err != nil {
		return CreatePaymentRequestCommand{}, err
	}
	if !caller.CanSetFinancials() {
		return CreatePaymentRequestCommand{}, errs.NewForbiddenError("raise payment request", caller.Role().String())
	}

	return CreatePaymentRequestCommand{
		caller:          caller,
		requestID:       requestID,
		vehicleID:       vehicleID,
		orderID:         orderID,
		transactionType: transactionType,
		amount:          amount,
		beneficiaryID:   beneficiaryID,
		at:              at.UTC(),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePaymentRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentRequestCommandIsNotConstructed)
}

func (c CreatePaymentRequestCommand) Caller() kernel.Caller { return c.caller }
func (c CreatePaymentRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c CreatePaymentRequestCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c CreatePaymentRequestCommand) OrderID() *kernel.UUID { return c.orderID }
func (c CreatePaymentRequestCommand) TransactionType() payment.TransactionType { return c.transactionType }
func (c CreatePaymentRequestCommand) Amount() decimal.Decimal { return c.amount }
func (c CreatePaymentRequestCommand) BeneficiaryID() string { return c.beneficiaryID }
func (c CreatePaymentRequestCommand) At() time.Time { return c.at }
