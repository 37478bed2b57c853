package services

import (
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/model/vehicle"
)

// CompletionOutcome is the decision of the completion policy.
type CompletionOutcome int

const (
	// CompletionAdvanced means the vehicle moved to COMPLETED and its orders were synchronized.
	CompletionAdvanced CompletionOutcome = iota + 1
	// CompletionAlreadyDone means the vehicle is at or past COMPLETED.
	CompletionAlreadyDone
	// CompletionAwaitingPayment means no balance or full shipping request is completed yet.
	CompletionAwaitingPayment
	// CompletionAwaitingPOD means the trip is paid but no proof of delivery is attached.
	CompletionAwaitingPOD
	// CompletionBlocked means the vehicle refused the transition; Err says why.
	CompletionBlocked
)

func (o CompletionOutcome) String() string {
	switch o {
	case CompletionAdvanced:
		return "advanced"
	case CompletionAlreadyDone:
		return "already-done"
	case CompletionAwaitingPayment:
		return "awaiting-payment"
	case CompletionAwaitingPOD:
		return "awaiting-pod"
	case CompletionBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// CompletionDecision is returned by VehicleCompletionPolicy.Evaluate.
type CompletionDecision struct {
	Outcome CompletionOutcome
	Err     error
	Sync    SyncReport
}

// VehicleCompletionPolicy completes a vehicle once its trip is settled: a balance
// or full shipping request is COMPLETED and a proof of delivery is attached.
// This is the one path by which a ledger event changes the lifecycle.
type VehicleCompletionPolicy struct {
	synchronizer StatusSynchronizer
}

func NewVehicleCompletionPolicy(synchronizer StatusSynchronizer) VehicleCompletionPolicy {
	return VehicleCompletionPolicy{synchronizer: synchronizer}
}

// Triggers reports whether completing a request of type t should run the policy.
func (p VehicleCompletionPolicy) Triggers(t payment.TransactionType) bool {
	return t.SettlesTrip()
}

// Evaluate decides on v given all payment requests of the vehicle. On
// CompletionAdvanced v and the synchronized orders are mutated and must be persisted.
func (p VehicleCompletionPolicy) Evaluate(
	v *vehicle.Vehicle,
	requests []*payment.Request,
	podAttached bool,
	orders []*order.Order,
	at time.Time,
) CompletionDecision {
	if v.IsAtOrAfter(vehicle.Completed) {
		return CompletionDecision{Outcome: CompletionAlreadyDone}
	}

	settled := false
	for _, r := range requests {
		if r.IsCompleted() && r.TransactionType().SettlesTrip() {
			settled = true
			break
		}
	}
	if !settled {
		return CompletionDecision{Outcome: CompletionAwaitingPayment}
	}
	if !podAttached {
		return CompletionDecision{Outcome: CompletionAwaitingPOD}
	}

	if err := v.Settle(at); err != nil {
		return CompletionDecision{Outcome: CompletionBlocked, Err: err}
	}

	return CompletionDecision{
		Outcome: CompletionAdvanced,
		Sync:    p.synchronizer.Sync(v.Status(), orders),
	}
}
