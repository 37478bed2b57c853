package order

import (
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/lifecycle"
	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Orders move forward through the pipeline below; HOLD and DELETED are frozen
// states outside the pipeline, entered through Hold/Delete and left through Reactivate.
//
//	INFORMATION_NEEDED -> ASSIGN_VEHICLE -> VEHICLE_ASSIGNED -> ARRIVED -> GATE_IN
//	  -> LOADING_START -> LOADING_COMPLETE -> TRIP_INVOICED -> GATE_OUT -> IN_JOURNEY
//	  -> COMPLETED -> INVOICED -> CANCELLED
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	// InformationNeeded means eligibility fields are still missing.
	InformationNeeded
	// AssignVehicle means the order is ready for dispatch.
	AssignVehicle
	VehicleAssigned
	Arrived
	GateIn
	LoadingStart
	LoadingComplete
	TripInvoiced
	GateOut
	InJourney
	Completed
	Invoiced
	Cancelled
	// Hold is frozen; the order keeps its previous status until reactivated.
	Hold
	// Deleted is frozen; orders are never removed from storage.
	Deleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		InformationNeeded: "INFORMATION_NEEDED",
		AssignVehicle:     "ASSIGN_VEHICLE",
		VehicleAssigned:   "VEHICLE_ASSIGNED",
		Arrived:           "ARRIVED",
		GateIn:            "GATE_IN",
		LoadingStart:      "LOADING_START",
		LoadingComplete:   "LOADING_COMPLETE",
		TripInvoiced:      "TRIP_INVOICED",
		GateOut:           "GATE_OUT",
		InJourney:         "IN_JOURNEY",
		Completed:         "COMPLETED",
		Invoiced:          "INVOICED",
		Cancelled:         "CANCELLED",
		Hold:              "HOLD",
		Deleted:           "DELETED",
	}
}

var sequence = lifecycle.NewSequence("order",
	[]Status{
		InformationNeeded,
		AssignVehicle,
		VehicleAssigned,
		Arrived,
		GateIn,
		LoadingStart,
		LoadingComplete,
		TripInvoiced,
		GateOut,
		InJourney,
		Completed,
		Invoiced,
		Cancelled,
	},
	Hold, Deleted,
)

// Sequence returns the order pipeline.
func Sequence() lifecycle.Sequence[Status] {
	return sequence
}

// String returns the persisted and wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate accepts pipeline statuses and the two frozen statuses.
func (s Status) Validate() error {
	if !sequence.Contains(s) && !sequence.IsFrozen(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsFrozen reports HOLD and DELETED.
func (s Status) IsFrozen() bool {
	return sequence.IsFrozen(s)
}

// EarnsProfit reports whether profit is computed in this status.
func (s Status) EarnsProfit() bool {
	return s == Completed || s == Invoiced
}

// ParseStatus resolves a wire name. Unknown names return Unknown without error
// so that AssertForward can report them as InvalidTransition.
func ParseStatus(s string) Status {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if str == name {
			return status
		}
	}
	return Unknown
}
