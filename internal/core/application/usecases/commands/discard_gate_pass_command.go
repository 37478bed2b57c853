package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrDiscardGatePassCommandIsNotConstructed = errors.New(
	"DiscardGatePassCommand must be created via NewCancelGatePassCommand or NewDeleteGatePassCommand",
)

// DiscardGatePassCommand cancels a gate pass, or deletes it outright while the
// visit has not started.
type DiscardGatePassCommand struct {
	caller     kernel.Caller
	gatePassID kernel.UUID
	delete     bool

	guard guard.ConstructorGuard
}

func NewCancelGatePassCommand(caller kernel.Caller, gatePassID kernel.UUID) (DiscardGatePassCommand, error) {
	return newDiscardGatePassCommand(caller, gatePassID, false)
}

func NewDeleteGatePassCommand(caller kernel.Caller, gatePassID kernel.UUID) (DiscardGatePassCommand, error) {
	return newDiscardGatePassCommand(caller, gatePassID, true)
}

func newDiscardGatePassCommand(caller kernel.Caller, gatePassID kernel.UUID, del bool) (DiscardGatePassCommand, error) {
	if err := errors.Join(caller.Validate(), gatePassID.Validate()); err != nil {
		return DiscardGatePassCommand{}, err
	}

	return DiscardGatePassCommand{
		caller:     caller,
		gatePassID: gatePassID,
		delete:     del,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DiscardGatePassCommand) Validate() error {
	return c.guard.Validate(ErrDiscardGatePassCommandIsNotConstructed)
}

func (c DiscardGatePassCommand) Caller() kernel.Caller { return c.caller }
func (c DiscardGatePassCommand) GatePassID() kernel.UUID { return c.gatePassID }
func (c DiscardGatePassCommand) IsDelete() bool { return c.delete }
