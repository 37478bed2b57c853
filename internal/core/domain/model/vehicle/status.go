package vehicle

import (
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/lifecycle"
	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of a vehicle.
type Status int

const (
	Unknown Status = iota
	Assigned
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
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		Assigned:        "ASSIGNED",
		Arrived:         "ARRIVED",
		GateIn:          "GATE_IN",
		LoadingStart:    "LOADING_START",
		LoadingComplete: "LOADING_COMPLETE",
		TripInvoiced:    "TRIP_INVOICED",
		GateOut:         "GATE_OUT",
		InJourney:       "IN_JOURNEY",
		Completed:       "COMPLETED",
		Invoiced:        "INVOICED",
		Cancelled:       "CANCELLED",
	}
}

var sequence = lifecycle.NewSequence("vehicle", []Status{
	Assigned,
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
})

// Sequence returns the vehicle pipeline.
func Sequence() lifecycle.Sequence[Status] {
	return sequence
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if !sequence.Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus resolves a wire name; unknown names return Unknown.
func ParseStatus(s string) Status {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if str == name {
			return status
		}
	}
	return Unknown
}

// InvoiceStatus tracks billing of the trip independently of the physical pipeline.
type InvoiceStatus int

const (
	InvoiceUnknown InvoiceStatus = iota
	InvoicePending
	InvoiceTripRaised
	InvoiceRaised
)

func getInvoiceStatusStrings() map[InvoiceStatus]string {
	return map[InvoiceStatus]string{
		InvoicePending:    "PENDING",
		InvoiceTripRaised: "TRIP_INVOICED",
		InvoiceRaised:     "INVOICED",
	}
}

func (s InvoiceStatus) String() string {
	if str, ok := getInvoiceStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s InvoiceStatus) Validate() error {
	if _, ok := getInvoiceStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("invoice status is invalid", fmt.Errorf("%d is not a valid invoice status", s))
	}
	return nil
}
