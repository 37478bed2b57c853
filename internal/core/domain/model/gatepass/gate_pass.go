// Package gatepass models one physical visit of a vehicle to the facility.
package gatepass

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGatePassIsNotConstructed = errors.New("GatePass must be created via NewGatePass constructor")

// GatePass records check-in, gate-in and gate-out of a visit.
//
// Invariants:
//   - GATE_IN requires CHECK_IN, GATE_OUT requires GATE_IN
//   - deletion is only allowed in CHECK_IN while the linked vehicle is still ASSIGNED
type GatePass struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	vehicleID *kernel.UUID
	orderID   *kernel.UUID

	status    Status
	checkInAt time.Time
	gateInAt  *time.Time
	gateOutAt *time.Time

	guard guard.ConstructorGuard
}

// NewGatePass checks a visitor in.
func NewGatePass(id, tenantID kernel.UUID, vehicleID, orderID *kernel.UUID, at time.Time) (*GatePass, error) {
	g := &GatePass{
		status:    CheckIn,
		checkInAt: at.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(id),
		validateID(tenantID),
		validateOptionalID(vehicleID),
		validateOptionalID(orderID),
	); err != nil {
		return nil, err
	}

	g.id = id
	g.tenantID = tenantID
	g.vehicleID = copyID(vehicleID)
	g.orderID = copyID(orderID)
	return g, nil
}

// Snapshot carries the persisted state of a gate pass.
type Snapshot struct {
	ID        kernel.UUID
	TenantID  kernel.UUID
	VehicleID *kernel.UUID
	OrderID   *kernel.UUID
	Status    Status
	CheckInAt time.Time
	GateInAt  *time.Time
	GateOutAt *time.Time
}

func RestoreGatePass(s Snapshot) (*GatePass, error) {
	if err := errors.Join(
		validateID(s.ID),
		validateID(s.TenantID),
		validateOptionalID(s.VehicleID),
		validateOptionalID(s.OrderID),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &GatePass{
		id:        s.ID,
		tenantID:  s.TenantID,
		vehicleID: copyID(s.VehicleID),
		orderID:   copyID(s.OrderID),
		status:    s.Status,
		checkInAt: s.CheckInAt,
		gateInAt:  s.GateInAt,
		gateOutAt: s.GateOutAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (g *GatePass) Validate() error {
	if g == nil {
		return ErrGatePassIsNotConstructed
	}
	return g.guard.Validate(ErrGatePassIsNotConstructed)
}

func (g *GatePass) ID() kernel.UUID { return g.id }
func (g *GatePass) TenantID() kernel.UUID { return g.tenantID }
func (g *GatePass) VehicleID() *kernel.UUID { return copyID(g.vehicleID) }
func (g *GatePass) OrderID() *kernel.UUID { return copyID(g.orderID) }
func (g *GatePass) Status() Status { return g.status }
func (g *GatePass) CheckInAt() time.Time { return g.checkInAt }
func (g *GatePass) GateInAt() *time.Time { return g.gateInAt }
func (g *GatePass) GateOutAt() *time.Time { return g.gateOutAt }

// GateIn admits a checked-in visitor. Repeating it is a no-op.
func (g *GatePass) GateIn(at time.Time) error {
	if err := g.advance(CheckIn, GateIn); err != nil || g.gateInAt != nil {
		return err
	}
	t := at.UTC()
	g.gateInAt = &t
	return nil
}

// GateOut releases a visitor that went through gate-in. Repeating it is a no-op.
func (g *GatePass) GateOut(at time.Time) error {
	if err := g.advance(GateIn, GateOut); err != nil || g.gateOutAt != nil {
		return err
	}
	t := at.UTC()
	g.gateOutAt = &t
	return nil
}

// Cancel abandons the visit.
func (g *GatePass) Cancel() error {
	if err := sequence.AssertForward(g.status, Cancelled); err != nil {
		return err
	}
	g.status = Cancelled
	return nil
}

// EnsureDeletable reports whether the pass may be removed. linked is the vehicle
// the pass refers to, nil when it has none.
func (g *GatePass) EnsureDeletable(linked *vehicle.Vehicle) error {
	if g.status != CheckIn {
		return errs.NewPreconditionNotMetError("status CHECK_IN", "gate pass "+g.id.String())
	}
	if linked != nil && linked.IsAtOrAfter(vehicle.Arrived) {
		return errs.NewPreconditionNotMetError("vehicle still ASSIGNED", "gate pass "+g.id.String())
	}
	return nil
}

// advance moves from required to next. Staying on next is allowed.
func (g *GatePass) advance(required, next Status) error {
	if err := sequence.AssertForward(g.status, next); err != nil {
		return err
	}
	if g.status == next {
		return nil
	}
	if g.status != required {
		return errs.NewPreconditionNotMetError("status "+required.String(), "gate pass "+g.id.String())
	}
	g.status = next
	return nil
}

func validateID(id kernel.UUID) error {
	return id.Validate()
}

func validateOptionalID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
