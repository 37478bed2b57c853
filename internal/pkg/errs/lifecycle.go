package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Lifecycle errors are raised by the status sequences of orders, vehicles and gate passes.
var (
	ErrInvalidTransition        = errors.New("invalid transition")
	ErrUnsupportedSource        = errors.New("unsupported source status")
	ErrBackwardTransition       = errors.New("backward transition")
	ErrFrozenEntity             = errors.New("entity is frozen")
	ErrMissingEligibilityFields = errors.New("missing eligibility fields")
	ErrPreconditionNotMet       = errors.New("precondition not met")
)

// TransitionError describes a rejected status change. Kind is one of the
// lifecycle sentinels above and is what errors.Is matches against.
type TransitionError struct {
	Entity string
	From   string
	To     string
	Kind   error
}

func NewTransitionError(kind error, entity, from, to string) *TransitionError {
	return &TransitionError{
		Entity: entity,
		From:   from,
		To:     to,
		Kind:   kind,
	}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: %s %s -> %s", e.Kind, e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return e.Kind
}

// MissingEligibilityFieldsError lists the fields an order still lacks
// before it can be dispatched.
type MissingEligibilityFieldsError struct {
	Fields []string
}

func NewMissingEligibilityFieldsError(fields []string) *MissingEligibilityFieldsError {
	return &MissingEligibilityFieldsError{Fields: fields}
}

func (e *MissingEligibilityFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingEligibilityFields, strings.Join(e.Fields, ", "))
}

func (e *MissingEligibilityFieldsError) Unwrap() error {
	return ErrMissingEligibilityFields
}

// PreconditionNotMetError reports a missing document or a state that has to
// exist before an operation may run.
type PreconditionNotMetError struct {
	Precondition string
	Subject      string
}

func NewPreconditionNotMetError(precondition, subject string) *PreconditionNotMetError {
	return &PreconditionNotMetError{
		Precondition: precondition,
		Subject:      subject,
	}
}

func (e *PreconditionNotMetError) Error() string {
	return fmt.Sprintf("%s: %s for %s", ErrPreconditionNotMet, e.Precondition, e.Subject)
}

func (e *PreconditionNotMetError) Unwrap() error {
	return ErrPreconditionNotMet
}
