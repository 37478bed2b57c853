package services

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/vehicle"
)

// SyncOutcome is what happened to one order during synchronization.
type SyncOutcome int

const (
	// SyncUpdated means the order moved to the mapped status.
	SyncUpdated SyncOutcome = iota + 1
	// SyncUnchanged means the order already had the mapped status.
	SyncUnchanged
	// SyncSkippedFrozen means the order is on HOLD or DELETED.
	SyncSkippedFrozen
	// SyncSkippedRejected means the order refused the transition, usually because it is further along.
	SyncSkippedRejected
	// SyncSkippedNoMapping means the vehicle status implies no order status.
	SyncSkippedNoMapping
)

func (o SyncOutcome) String() string {
	switch o {
	case SyncUpdated:
		return "updated"
	case SyncUnchanged:
		return "unchanged"
	case SyncSkippedFrozen:
		return "skipped-frozen"
	case SyncSkippedRejected:
		return "skipped-rejected"
	case SyncSkippedNoMapping:
		return "skipped-no-mapping"
	default:
		return "unknown"
	}
}

// OrderSyncResult is the outcome for a single order.
type OrderSyncResult struct {
	OrderID kernel.UUID
	From    order.Status
	To      order.Status
	Outcome SyncOutcome
	Err     error
}

// SyncReport lists the outcome of every order in input order.
type SyncReport struct {
	VehicleStatus vehicle.Status
	Results       []OrderSyncResult
}

// UpdatedCount is the number of orders that changed status.
func (r SyncReport) UpdatedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == SyncUpdated {
			n++
		}
	}
	return n
}

// Skipped returns the results of orders that did not follow the vehicle.
func (r SyncReport) Skipped() []OrderSyncResult {
	skipped := make([]OrderSyncResult, 0)
	for _, res := range r.Results {
		if res.Outcome != SyncUpdated && res.Outcome != SyncUnchanged {
			skipped = append(skipped, res)
		}
	}
	return skipped
}

// vehicleToOrderStatus is the order status implied by each vehicle status.
var vehicleToOrderStatus = map[vehicle.Status]order.Status{
	vehicle.Assigned:        order.VehicleAssigned,
	vehicle.Arrived:         order.Arrived,
	vehicle.GateIn:          order.GateIn,
	vehicle.LoadingStart:    order.LoadingStart,
	vehicle.LoadingComplete: order.LoadingComplete,
	vehicle.TripInvoiced:    order.TripInvoiced,
	vehicle.GateOut:         order.GateOut,
	vehicle.InJourney:       order.InJourney,
	vehicle.Completed:       order.Completed,
	vehicle.Invoiced:        order.Invoiced,
	vehicle.Cancelled:       order.Cancelled,
}

// OrderStatusFor returns the order status a vehicle status implies.
func OrderStatusFor(s vehicle.Status) (order.Status, bool) {
	st, ok := vehicleToOrderStatus[s]
	return st, ok
}

// StatusSynchronizer moves the orders carried by a vehicle to the status the
// vehicle implies.
//
// Business rules:
//   - frozen orders are skipped
//   - an order that refuses the transition (already ahead, missing eligibility data)
//     is skipped without affecting its siblings
//   - no failure of a single order is returned as an error; the report carries it
//
// Example usage:
//
//	report := services.NewStatusSynchronizer().Sync(v.Status(), orders)
//	for _, o := range report.UpdatedOrders(orders) {
//	    if err := repo.Update(ctx, o); err != nil {
//	        return err
//	    }
//	}
type StatusSynchronizer struct{}

func NewStatusSynchronizer() StatusSynchronizer {
	return StatusSynchronizer{}
}

// Sync applies the mapped status to every order and reports the outcome per order.
func (s StatusSynchronizer) Sync(vehicleStatus vehicle.Status, orders []*order.Order) SyncReport {
	report := SyncReport{
		VehicleStatus: vehicleStatus,
		Results:       make([]OrderSyncResult, 0, len(orders)),
	}

	target, mapped := OrderStatusFor(vehicleStatus)

	for _, o := range orders {
		res := OrderSyncResult{OrderID: o.ID(), From: o.Status(), To: target}

		switch {
		case !mapped:
			res.Outcome = SyncSkippedNoMapping
		case o.IsFrozen():
			res.Outcome = SyncSkippedFrozen
		case o.Status() == target:
			res.Outcome = SyncUnchanged
		default:
			if err := o.TransitionTo(target); err != nil {
				res.Outcome = SyncSkippedRejected
				res.Err = err
			} else {
				res.Outcome = SyncUpdated
			}
		}

		report.Results = append(report.Results, res)
	}

	return report
}

// UpdatedOrders picks the orders whose status changed, for persistence.
func (r SyncReport) UpdatedOrders(orders []*order.Order) []*order.Order {
	updated := make(map[kernel.UUID]struct{}, len(r.Results))
	for _, res := range r.Results {
		if res.Outcome == SyncUpdated {
			updated[res.OrderID] = struct{}{}
		}
	}

	out := make([]*order.Order, 0, len(updated))
	for _, o := range orders {
		if _, ok := updated[o.ID()]; ok {
			out = append(out, o)
		}
	}
	return out
}

// LagsBehind reports whether an order is behind the status its vehicle implies.
// Frozen orders and unmapped vehicle statuses never lag.
func LagsBehind(o *order.Order, vehicleStatus vehicle.Status) bool {
	target, ok := OrderStatusFor(vehicleStatus)
	if !ok || o.IsFrozen() || o.Status() == target {
		return false
	}
	return order.Sequence().IsAtOrAfter(target, o.Status())
}
