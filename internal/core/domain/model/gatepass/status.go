package gatepass

import (
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/lifecycle"
	"logistics/internal/pkg/errs"
)

// Status of a single visit: CHECK_IN -> GATE_IN -> GATE_OUT, or CANCELLED.
type Status int

const (
	Unknown Status = iota
	CheckIn
	GateIn
	GateOut
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		CheckIn:   "CHECK_IN",
		GateIn:    "GATE_IN",
		GateOut:   "GATE_OUT",
		Cancelled: "CANCELLED",
	}
}

var sequence = lifecycle.NewSequence("gate pass", []Status{CheckIn, GateIn, GateOut, Cancelled})

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

func ParseStatus(s string) Status {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if str == name {
			return status
		}
	}
	return Unknown
}
