package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLinkTransactionsCommandIsNotConstructed = errors.New(
	"LinkTransactionsCommand must be created via NewLinkTransactionsCommand constructor",
)

// TransactionLeg names a bank transaction to draw from. A zero Amount draws
// whatever the transaction has left.
type TransactionLeg struct {
	TransactionID kernel.UUID
	Amount        decimal.Decimal
}

// LinkTransactionsCommand allocates one or more bank transactions to a payment request.
type LinkTransactionsCommand struct {
	caller    kernel.Caller
	requestID kernel.UUID
	legs      []TransactionLeg
	at        time.Time

	guard guard.ConstructorGuard
}

func NewLinkTransactionsCommand(
	caller kernel.Caller,
	requestID kernel.UUID,
	legs []TransactionLeg,
	at time.Time,
) (LinkTransactionsCommand, error) {
	if err := errors.Join(caller.Validate(), requestID.Validate(), validateLegs(legs)); err != nil {
		return LinkTransactionsCommand{}, err
	}
	if !caller.CanSetFinancials() {
		return LinkTransactionsCommand{}, errs.NewForbiddenError("link bank transactions", caller.Role().String())
	}

	return LinkTransactionsCommand{
		caller:    caller,
		requestID: requestID,
		legs:      append([]TransactionLeg(nil), legs...),
		at:        at.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c LinkTransactionsCommand) Validate() error {
	return c.guard.Validate(ErrLinkTransactionsCommandIsNotConstructed)
}

func (c LinkTransactionsCommand) Caller() kernel.Caller { return c.caller }
func (c LinkTransactionsCommand) RequestID() kernel.UUID { return c.requestID }
func (c LinkTransactionsCommand) Legs() []TransactionLeg { return c.legs }
func (c LinkTransactionsCommand) At() time.Time { return c.at }

func validateLegs(legs []TransactionLeg) error {
	if len(legs) == 0 {
		return errs.NewValueIsRequiredError("transactions")
	}
	var joined error
	for _, leg := range legs {
		joined = errors.Join(joined, leg.TransactionID.Validate())
		if leg.Amount.IsNegative() {
			joined = errors.Join(joined, errs.NewValueIsInvalidError("amount"))
		}
	}
	return joined
}

func legIDs(legs []TransactionLeg) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(legs))
	for _, leg := range legs {
		ids = append(ids, leg.TransactionID)
	}
	return ids
}
