package commands

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrChangeOrderAvailabilityCommandIsNotConstructed = errors.New(
	"ChangeOrderAvailabilityCommand must be created via NewChangeOrderAvailabilityCommand constructor",
)

// AvailabilityAction freezes or unfreezes an order.
type AvailabilityAction int

const (
	ActionUnknown AvailabilityAction = iota
	ActionHold
	ActionDelete
	ActionReactivate
)

func getAvailabilityActionStrings() map[AvailabilityAction]string {
	return map[AvailabilityAction]string{
		ActionHold:       "HOLD",
		ActionDelete:     "DELETE",
		ActionReactivate: "REACTIVATE",
	}
}

func (a AvailabilityAction) String() string {
	if s, ok := getAvailabilityActionStrings()[a]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseAvailabilityAction maps HOLD, DELETE or REACTIVATE to its action.
func ParseAvailabilityAction(s string) (AvailabilityAction, error) {
	for a, name := range getAvailabilityActionStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not an availability action", s))
}

// ChangeOrderAvailabilityCommand puts an order on hold, deletes it, or
// reactivates it to the status it had before.
type ChangeOrderAvailabilityCommand struct {
	caller  kernel.Caller
	orderID kernel.UUID
	action  AvailabilityAction

	guard guard.ConstructorGuard
}

func NewChangeOrderAvailabilityCommand(
	caller kernel.Caller,
	orderID kernel.UUID,
	action AvailabilityAction,
) (ChangeOrderAvailabilityCommand, error) {
	var actionErr error
	if _, ok := getAvailabilityActionStrings()[action]; !ok {
		actionErr = errs.NewValueIsInvalidError("action")
	}
	if err := errors.Join(caller.Validate(), orderID.Validate(), actionErr); err != nil {
		return ChangeOrderAvailabilityCommand{}, err
	}

	return ChangeOrderAvailabilityCommand{
		caller:  caller,
		orderID: orderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderAvailabilityCommandIsNotConstructed)
}

func (c ChangeOrderAvailabilityCommand) Caller() kernel.Caller { return c.caller }
func (c ChangeOrderAvailabilityCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderAvailabilityCommand) Action() AvailabilityAction { return c.action }
