package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrMoveThroughGateCommandIsNotConstructed = errors.New(
	"MoveThroughGateCommand must be created via NewMoveThroughGateCommand constructor",
)

// GateDirection is the way a gate pass moves through the gate.
type GateDirection int

const (
	DirectionUnknown GateDirection = iota
	DirectionIn
	DirectionOut
)

func (d GateDirection) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	case DirectionUnknown:
	}
	return "UNKNOWN"
}

// ParseGateDirection accepts IN and OUT in any case.
func ParseGateDirection(s string) (GateDirection, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IN":
		return DirectionIn, nil
	case "OUT":
		return DirectionOut, nil
	}
	return DirectionUnknown, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not IN or OUT", s))
}

// MoveThroughGateCommand records a gate-in or gate-out of a gate pass.
type MoveThroughGateCommand struct {
	caller     kernel.Caller
	gatePassID kernel.UUID
	direction  GateDirection
	at         time.Time

	guard guard.ConstructorGuard
}

func NewMoveThroughGateCommand(
	caller kernel.Caller,
	gatePassID kernel.UUID,
	direction GateDirection,
	at time.Time,
) (MoveThroughGateCommand, error) {
	var directionErr error
	if direction != DirectionIn && direction != DirectionOut {
		directionErr = errs.NewValueIsInvalidError("direction")
	}
	if err := errors.Join(caller.Validate(), gatePassID.Validate(), directionErr); err != nil {
		return MoveThroughGateCommand{}, err
	}

	return MoveThroughGateCommand{
		caller:     caller,
		gatePassID: gatePassID,
		direction:  direction,
		at:         at.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c MoveThroughGateCommand) Validate() error {
	return c.guard.Validate(ErrMoveThroughGateCommandIsNotConstructed)
}

func (c MoveThroughGateCommand) Caller() kernel.Caller { return c.caller }
func (c MoveThroughGateCommand) GatePassID() kernel.UUID { return c.gatePassID }
func (c MoveThroughGateCommand) Direction() GateDirection { return c.direction }
func (c MoveThroughGateCommand) At() time.Time { return c.at }
