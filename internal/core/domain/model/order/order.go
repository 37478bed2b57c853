package order

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order bypassed NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrSoNumberIsRequired is returned when the order number is blank.
	ErrSoNumberIsRequired = errs.NewValueIsRequiredError("soNumber")
	// ErrOrderIsNotFrozen is returned when reactivating an order that is not on hold or deleted.
	ErrOrderIsNotFrozen = errs.NewValueIsInvalidErrorWithCause("status", errors.New("order is not frozen"))
)

// Order is a customer shipment request and the aggregate root of its lifecycle.
//
// Invariants:
//   - status is a pipeline status or one of the frozen statuses HOLD/DELETED
//   - a frozen order rejects every mutation until Reactivate
//   - the order cannot leave INFORMATION_NEEDED (other than to CANCELLED) while eligibility fields are missing
//   - profit is only computed once the status reaches COMPLETED or INVOICED
//   - a field is only overwritten by a source of equal or higher precedence than its last writer
type Order struct {
	id       kernel.UUID
	tenantID kernel.UUID

	status         Status
	previousStatus *Status

	eligibility   EligibilityFields
	tripReference string

	freightCost decimal.Decimal
	vehicleCost decimal.Decimal
	profit      *decimal.Decimal

	provenance Provenance

	guard guard.ConstructorGuard
}

// NewOrder registers an order written by source. When requested is Unknown the
// initial status is derived from the eligibility fields; an explicit request
// for a dispatch-ready status is refused while fields are missing.
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	fields EligibilityFields,
	tripReference string,
	freightCost decimal.Decimal,
	source Source,
	requested Status,
) (*Order, error) {
	fields.SoNumber = strings.TrimSpace(fields.SoNumber)
	o := &Order{
		eligibility:   fields,
		tripReference: strings.TrimSpace(tripReference),
		provenance:    make(Provenance),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setFreightCost(freightCost),
		validateSoNumber(fields.SoNumber),
		validateSource(source),
	); err != nil {
		return nil, err
	}

	status, err := initialStatus(fields, requested)
	if err != nil {
		return nil, err
	}
	o.status = status

	for _, f := range o.presentFields() {
		o.provenance[f] = source
	}

	return o, nil
}

// Snapshot carries the persisted state of an order.
type Snapshot struct {
	ID             kernel.UUID
	TenantID       kernel.UUID
	Status         Status
	PreviousStatus *Status
	Eligibility    EligibilityFields
	TripReference  string
	FreightCost    decimal.Decimal
	VehicleCost    decimal.Decimal
	Profit         *decimal.Decimal
	Provenance     Provenance
}

// RestoreOrder rebuilds an order from storage without re-deriving its status.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		eligibility:   s.Eligibility,
		tripReference: s.TripReference,
		vehicleCost:   s.VehicleCost,
		profit:        s.Profit,
		provenance:    s.Provenance.Clone(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setTenantID(s.TenantID),
		o.setFreightCost(s.FreightCost),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	if s.PreviousStatus != nil {
		if err := s.PreviousStatus.Validate(); err != nil {
			return nil, err
		}
		prev := *s.PreviousStatus
		o.previousStatus = &prev
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) TenantID() kernel.UUID { return o.tenantID }
func (o *Order) Status() Status { return o.status }
func (o *Order) Eligibility() EligibilityFields { return o.eligibility }
func (o *Order) SoNumber() string { return o.eligibility.SoNumber }
func (o *Order) TripReference() string { return o.tripReference }
func (o *Order) FreightCost() decimal.Decimal { return o.freightCost }
func (o *Order) VehicleCost() decimal.Decimal { return o.vehicleCost }
func (o *Order) IsFrozen() bool { return o.status.IsFrozen() }

// PreviousStatus is the status held before the order was frozen, nil otherwise.
func (o *Order) PreviousStatus() *Status {
	if o.previousStatus == nil {
		return nil
	}
	prev := *o.previousStatus
	return &prev
}

// Profit is nil until the order reaches COMPLETED or INVOICED.
func (o *Order) Profit() *decimal.Decimal {
	if o.profit == nil {
		return nil
	}
	p := *o.profit
	return &p
}

// Provenance returns a copy of the last writer per field.
func (o *Order) Provenance() Provenance {
	return o.provenance.Clone()
}

// MissingFields lists the eligibility fields still absent.
func (o *Order) MissingFields() []Field {
	return MissingFields(o.eligibility)
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	SoNumber        *string
	CaseCount       *float64
	CaseLot         *string
	DestinationTown *string
	PinCode         *string
	TruckSize       *float64
	TruckType       *string
	TripReference   *string
	FreightCost     *decimal.Decimal
}

// WithoutFinancials drops the fields a restricted caller may not set.
func (p Patch) WithoutFinancials() Patch {
	p.FreightCost = nil
	return p
}

// IsEmpty reports whether no field is set.
func (p Patch) IsEmpty() bool {
	return p.SoNumber == nil && p.CaseCount == nil && p.CaseLot == nil &&
		p.DestinationTown == nil && p.PinCode == nil && p.TruckSize == nil &&
		p.TruckType == nil && p.TripReference == nil && p.FreightCost == nil
}

// PatchResult tells the caller which fields were written and which were kept
// because a higher precedence source wrote them last.
type PatchResult struct {
	Applied  []Field
	Skipped  []Field
	Advanced bool
}

// ApplyPatch writes the fields of p that source is allowed to overwrite.
// While the order is INFORMATION_NEEDED and the patch completes the eligibility
// fields, the status advances to ASSIGN_VEHICLE. Orders past that point keep their status.
func (o *Order) ApplyPatch(p Patch, source Source) (PatchResult, error) {
	result := PatchResult{}

	if err := o.ensureNotFrozen("patch"); err != nil {
		return result, err
	}
	if err := validateSource(source); err != nil {
		return result, err
	}
	if p.SoNumber != nil {
		if err := validateSoNumber(*p.SoNumber); err != nil {
			return result, err
		}
	}
	if p.FreightCost != nil {
		if err := kernel.ValidateNonNegativeAmount("freightCost", *p.FreightCost); err != nil {
			return result, err
		}
	}

	next := o.eligibility
	write := func(field Field, set bool, apply func()) {
		if !set {
			return
		}
		if !o.provenance.CanOverwrite(field, source) {
			result.Skipped = append(result.Skipped, field)
			return
		}
		apply()
		o.provenance[field] = source
		result.Applied = append(result.Applied, field)
	}

	write(FieldSoNumber, p.SoNumber != nil, func() { next.SoNumber = strings.TrimSpace(*p.SoNumber) })
	write(FieldCaseCount, p.CaseCount != nil, func() { next.CaseCount = *p.CaseCount })
	write(FieldCaseLot, p.CaseLot != nil, func() { next.CaseLot = *p.CaseLot })
	write(FieldDestinationTown, p.DestinationTown != nil, func() { next.DestinationTown = *p.DestinationTown })
	write(FieldPinCode, p.PinCode != nil, func() { next.PinCode = *p.PinCode })
	write(FieldTruckSize, p.TruckSize != nil, func() { next.TruckSize = *p.TruckSize })
	write(FieldTruckType, p.TruckType != nil, func() { next.TruckType = *p.TruckType })
	write(FieldTripReference, p.TripReference != nil, func() { o.tripReference = strings.TrimSpace(*p.TripReference) })
	write(FieldFreightCost, p.FreightCost != nil, func() { o.freightCost = *p.FreightCost })

	o.eligibility = next

	if o.status == InformationNeeded && DeriveStatus(o.eligibility) == AssignVehicle {
		o.status = AssignVehicle
		result.Advanced = true
	}

	return result, nil
}

// TransitionTo moves the order forward in its pipeline.
func (o *Order) TransitionTo(next Status) error {
	if err := sequence.AssertForward(o.status, next); err != nil {
		return err
	}

	if o.status == InformationNeeded && next != InformationNeeded && next != Cancelled {
		if missing := o.MissingFields(); len(missing) > 0 {
			return errs.NewMissingEligibilityFieldsError(fieldNames(missing))
		}
	}

	o.status = next
	if next.EarnsProfit() {
		o.computeProfit()
	}
	return nil
}

// AssignVehicleCost records the share of the vehicle amount carried by this order.
func (o *Order) AssignVehicleCost(cost decimal.Decimal) error {
	if err := o.ensureNotFrozen("vehicle cost"); err != nil {
		return err
	}
	if err := kernel.ValidateNonNegativeAmount("vehicleCost", cost); err != nil {
		return err
	}
	o.vehicleCost = cost
	if o.status.EarnsProfit() {
		o.computeProfit()
	}
	return nil
}

// Hold freezes the order and remembers its status.
func (o *Order) Hold() error {
	return o.freeze(Hold)
}

// Delete freezes the order as DELETED. A held order may be deleted directly;
// it keeps the status it had before the hold.
func (o *Order) Delete() error {
	if o.status == Hold {
		o.status = Deleted
		return nil
	}
	return o.freeze(Deleted)
}

// Reactivate restores the status held before freezing.
func (o *Order) Reactivate() error {
	if !o.status.IsFrozen() || o.previousStatus == nil {
		return ErrOrderIsNotFrozen
	}
	o.status = *o.previousStatus
	o.previousStatus = nil
	return nil
}

func (o *Order) freeze(to Status) error {
	if err := o.ensureNotFrozen(to.String()); err != nil {
		return err
	}
	prev := o.status
	o.previousStatus = &prev
	o.status = to
	return nil
}

func (o *Order) ensureNotFrozen(target string) error {
	if o.status.IsFrozen() {
		return errs.NewTransitionError(errs.ErrFrozenEntity, "order", o.status.String(), target)
	}
	return nil
}

func (o *Order) computeProfit() {
	p := o.freightCost.Sub(o.vehicleCost)
	o.profit = &p
}

func (o *Order) presentFields() []Field {
	present := make([]Field, 0, len(requiredFields)+2)
	for _, f := range requiredFields {
		if o.eligibility.has(f) {
			present = append(present, f)
		}
	}
	if o.tripReference != "" {
		present = append(present, FieldTripReference)
	}
	if !o.freightCost.IsZero() {
		present = append(present, FieldFreightCost)
	}
	return present
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.tenantID = id
	return nil
}

func (o *Order) setFreightCost(cost decimal.Decimal) error {
	if err := kernel.ValidateNonNegativeAmount("freightCost", cost); err != nil {
		return err
	}
	o.freightCost = cost
	return nil
}

func validateSoNumber(soNumber string) error {
	if strings.TrimSpace(soNumber) == "" {
		return ErrSoNumberIsRequired
	}
	return nil
}

func validateSource(source Source) error {
	if !source.IsValid() {
		return errs.NewValueIsInvalidErrorWithCause("source", fmt.Errorf("%d is not a valid source", source))
	}
	return nil
}

func initialStatus(fields EligibilityFields, requested Status) (Status, error) {
	derived := DeriveStatus(fields)
	if requested == Unknown {
		return derived, nil
	}
	if !sequence.Contains(requested) {
		return Unknown, errs.NewTransitionError(errs.ErrInvalidTransition, "order", Unknown.String(), requested.String())
	}
	if requested != InformationNeeded && requested != Cancelled && derived == InformationNeeded {
		return Unknown, errs.NewMissingEligibilityFieldsError(fieldNames(MissingFields(fields)))
	}
	return requested, nil
}
