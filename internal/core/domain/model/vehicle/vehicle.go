package vehicle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
	ErrNumberIsRequired        = errs.NewValueIsRequiredError("vehicleNumber")
	// ErrTripReferenceConflict is returned when orders of another trip are assigned to the vehicle.
	ErrTripReferenceConflict = errors.New("vehicle already carries a different trip reference")
	// ErrDetentionWindowIsInvalid is returned when unloading is not after reaching the destination.
	ErrDetentionWindowIsInvalid = errors.New("unloaded time must be after reached time")
)

// Vehicle is a truck and driver assignment.
//
// Invariants:
//   - number is fixed at creation
//   - status only moves forward through the vehicle pipeline
//   - LOADING_COMPLETE is only reached with a positive loading quantity
//   - once set, the trip reference never changes
type Vehicle struct {
	id       kernel.UUID
	tenantID kernel.UUID
	number   string

	status        Status
	invoiceStatus InvoiceStatus

	tripReference   string
	loadingQuantity decimal.Decimal

	amount  decimal.Decimal
	expense decimal.Decimal

	milestones Milestones

	guard guard.ConstructorGuard
}

// NewVehicle creates a vehicle in ASSIGNED.
func NewVehicle(id, tenantID kernel.UUID, number, tripReference string, at time.Time) (*Vehicle, error) {
	v := &Vehicle{
		status:        Assigned,
		invoiceStatus: InvoicePending,
		tripReference: strings.TrimSpace(tripReference),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setTenantID(tenantID),
		v.setNumber(number),
	); err != nil {
		return nil, err
	}

	v.milestones.stamp(Assigned, at)
	return v, nil
}

// Snapshot carries the persisted state of a vehicle.
type Snapshot struct {
	ID              kernel.UUID
	TenantID        kernel.UUID
	Number          string
	Status          Status
	InvoiceStatus   InvoiceStatus
	TripReference   string
	LoadingQuantity decimal.Decimal
	Amount          decimal.Decimal
	Expense         decimal.Decimal
	Milestones      Milestones
}

// RestoreVehicle rebuilds a vehicle from storage.
func RestoreVehicle(s Snapshot) (*Vehicle, error) {
	v := &Vehicle{
		tripReference: s.TripReference,
		milestones:    s.Milestones,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(s.ID),
		v.setTenantID(s.TenantID),
		v.setNumber(s.Number),
		s.Status.Validate(),
		s.InvoiceStatus.Validate(),
		kernel.ValidateNonNegativeAmount("loadingQuantity", s.LoadingQuantity),
		kernel.ValidateNonNegativeAmount("amount", s.Amount),
		kernel.ValidateNonNegativeAmount("expense", s.Expense),
	); err != nil {
		return nil, err
	}

	v.status = s.Status
	v.invoiceStatus = s.InvoiceStatus
	v.loadingQuantity = s.LoadingQuantity
	v.amount = s.Amount
	v.expense = s.Expense
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID { return v.id }
func (v *Vehicle) TenantID() kernel.UUID { return v.tenantID }
func (v *Vehicle) Number() string { return v.number }
func (v *Vehicle) Status() Status { return v.status }
func (v *Vehicle) InvoiceStatus() InvoiceStatus { return v.invoiceStatus }
func (v *Vehicle) TripReference() string { return v.tripReference }
func (v *Vehicle) LoadingQuantity() decimal.Decimal { return v.loadingQuantity }
func (v *Vehicle) Amount() decimal.Decimal { return v.amount }
func (v *Vehicle) Expense() decimal.Decimal { return v.expense }
func (v *Vehicle) Milestones() Milestones { return v.milestones }

// Profit is amount minus expense.
func (v *Vehicle) Profit() decimal.Decimal {
	return v.amount.Sub(v.expense)
}

// IsAtOrAfter reports whether the vehicle reached ref.
func (v *Vehicle) IsAtOrAfter(ref Status) bool {
	return sequence.IsAtOrAfter(v.status, ref)
}

// Crosses reports whether moving to next reaches ref for the first time.
// CANCELLED crosses nothing.
func (v *Vehicle) Crosses(ref, next Status) bool {
	return next != Cancelled && !v.IsAtOrAfter(ref) && sequence.IsAtOrAfter(next, ref)
}

// CheckTransition validates a move to next without applying it.
func (v *Vehicle) CheckTransition(next Status) error {
	return v.checkTransition(next, true)
}

// TransitionTo moves the vehicle forward and stamps the milestone of next.
// Staying on the current status is a no-op.
func (v *Vehicle) TransitionTo(next Status, at time.Time) error {
	if err := v.checkTransition(next, true); err != nil {
		return err
	}
	v.apply(next, at)
	return nil
}

// Settle moves the vehicle to COMPLETED once its trip is paid and delivered.
// A settled trip is proof of loading, so the loading quantity is not required.
func (v *Vehicle) Settle(at time.Time) error {
	if err := v.checkTransition(Completed, false); err != nil {
		return err
	}
	v.apply(Completed, at)
	return nil
}

func (v *Vehicle) checkTransition(next Status, requireLoading bool) error {
	if err := sequence.AssertForward(v.status, next); err != nil {
		return err
	}
	if requireLoading && v.Crosses(LoadingComplete, next) && !v.loadingQuantity.IsPositive() {
		return errs.NewPreconditionNotMetError("positive loading quantity", "vehicle "+v.number)
	}
	return nil
}

func (v *Vehicle) apply(next Status, at time.Time) {
	if next == v.status {
		return
	}

	v.status = next
	v.milestones.stamp(next, at)

	switch next {
	case TripInvoiced, GateOut, InJourney, Completed:
		if v.invoiceStatus == InvoicePending {
			v.invoiceStatus = InvoiceTripRaised
		}
	case Invoiced:
		v.invoiceStatus = InvoiceRaised
	default:
	}
}

// SetLoadingQuantity records the loaded quantity.
func (v *Vehicle) SetLoadingQuantity(q decimal.Decimal) error {
	if err := kernel.ValidatePositiveAmount("loadingQuantity", q); err != nil {
		return err
	}
	v.loadingQuantity = q
	return nil
}

// SetFinancials updates the agreed amount and the expense; nil leaves a value unchanged.
func (v *Vehicle) SetFinancials(amount, expense *decimal.Decimal) error {
	if amount != nil {
		if err := kernel.ValidateNonNegativeAmount("amount", *amount); err != nil {
			return err
		}
	}
	if expense != nil {
		if err := kernel.ValidateNonNegativeAmount("expense", *expense); err != nil {
			return err
		}
	}
	if amount != nil {
		v.amount = *amount
	}
	if expense != nil {
		v.expense = *expense
	}
	return nil
}

// AcceptTripReference binds ref to the vehicle. A blank ref is always accepted;
// a vehicle without a trip reference adopts ref; otherwise ref must match.
func (v *Vehicle) AcceptTripReference(ref string) error {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "" || ref == v.tripReference:
		return nil
	case v.tripReference == "":
		v.tripReference = ref
		return nil
	default:
		return errs.NewConflictError("tripReference",
			fmt.Errorf("%w: %s has %q, got %q", ErrTripReferenceConflict, v.number, v.tripReference, ref))
	}
}

// RecordReached stamps the arrival at the destination.
func (v *Vehicle) RecordReached(at time.Time) error {
	if u := v.milestones.UnloadedAt; u != nil && !u.After(at) {
		return errs.NewValueIsInvalidErrorWithCause("reachedAt", ErrDetentionWindowIsInvalid)
	}
	t := at.UTC()
	v.milestones.ReachedAt = &t
	return nil
}

// RecordUnloaded stamps the end of unloading; it must follow RecordReached.
func (v *Vehicle) RecordUnloaded(at time.Time) error {
	r := v.milestones.ReachedAt
	if r == nil {
		return errs.NewPreconditionNotMetError("reached time", "vehicle "+v.number)
	}
	if !at.After(*r) {
		return errs.NewValueIsInvalidErrorWithCause("unloadedAt", ErrDetentionWindowIsInvalid)
	}
	t := at.UTC()
	v.milestones.UnloadedAt = &t
	return nil
}

// DetentionWindow returns the reached and unloaded times when both are recorded in order.
func (v *Vehicle) DetentionWindow() (reached, unloaded time.Time, ok bool) {
	r, u := v.milestones.ReachedAt, v.milestones.UnloadedAt
	if r == nil || u == nil || !u.After(*r) {
		return time.Time{}, time.Time{}, false
	}
	return *r, *u, true
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.tenantID = id
	return nil
}

func (v *Vehicle) setNumber(number string) error {
	number = NormalizeNumber(number)
	if number == "" {
		return ErrNumberIsRequired
	}
	v.number = number
	return nil
}

// NormalizeNumber upper-cases a registration number and strips blanks, so
// "mh 12 ab 1234" and "MH12AB1234" identify the same vehicle.
func NormalizeNumber(number string) string {
	return strings.ToUpper(strings.Join(strings.Fields(number), ""))
}
