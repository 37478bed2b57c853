package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCompleteBatchCommandIsNotConstructed = errors.New(
	"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
)

// CompleteBatchCommand settles several requests of one beneficiary at once
// from a shared set of bank transactions.
type CompleteBatchCommand struct {
	caller     kernel.Caller
	requestIDs []kernel.UUID
	legs       []TransactionLeg
	at         time.Time

	guard guard.ConstructorGuard
}

func NewCompleteBatchCommand(
	caller kernel.Caller,
	requestIDs []kernel.UUID,
	legs []TransactionLeg,
	at time.Time,
) (CompleteBatchCommand, error) {
	var idsErr error
	if len(requestIDs) == 0 {
		idsErr = errs.NewValueIsRequiredError("paymentRequestIds")
	}
	for _, id := range requestIDs {
		idsErr = errors.Join(idsErr, id.Validate())
	}
	if err := errors.Join(caller.Validate(), idsErr, validateLegs(legs)); err != nil {
		return CompleteBatchCommand{}, err
	}
	if !caller.CanSetFinancials() {
		return CompleteBatchCommand{}, errs.NewForbiddenError("complete payment batch", caller.Role().String())
	}

	return CompleteBatchCommand{
		caller:     caller,
		requestIDs: append([]kernel.UUID(nil), requestIDs...),
		legs:       append([]TransactionLeg(nil), legs...),
		at:         at.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

func (c CompleteBatchCommand) Caller() kernel.Caller { return c.caller }
func (c CompleteBatchCommand) RequestIDs() []kernel.UUID { return c.requestIDs }
func (c CompleteBatchCommand) Legs() []TransactionLeg { return c.legs }
func (c CompleteBatchCommand) At() time.Time { return c.at }
