package vehicle

import "time"

// Milestones holds the first time each lifecycle point was reached. Reached and
// Unloaded are reported by the destination and feed detention charges; they are
// not pipeline statuses.
type Milestones struct {
	AssignedAt        *time.Time
	ArrivedAt         *time.Time
	GateInAt          *time.Time
	LoadingStartAt    *time.Time
	LoadingCompleteAt *time.Time
	TripInvoicedAt    *time.Time
	GateOutAt         *time.Time
	InJourneyAt       *time.Time
	ReachedAt         *time.Time
	UnloadedAt        *time.Time
	CompletedAt       *time.Time
	InvoicedAt        *time.Time
	CancelledAt       *time.Time
}

func (m *Milestones) slot(s Status) **time.Time {
	switch s {
	case Assigned:
		return &m.AssignedAt
	case Arrived:
		return &m.ArrivedAt
	case GateIn:
		return &m.GateInAt
	case LoadingStart:
		return &m.LoadingStartAt
	case LoadingComplete:
		return &m.LoadingCompleteAt
	case TripInvoiced:
		return &m.TripInvoicedAt
	case GateOut:
		return &m.GateOutAt
	case InJourney:
		return &m.InJourneyAt
	case Completed:
		return &m.CompletedAt
	case Invoiced:
		return &m.InvoicedAt
	case Cancelled:
		return &m.CancelledAt
	default:
		return nil
	}
}

// stamp records at for s unless s was stamped before.
func (m *Milestones) stamp(s Status, at time.Time) {
	slot := m.slot(s)
	if slot == nil || *slot != nil {
		return
	}
	t := at.UTC()
	*slot = &t
}

// At returns the time s was first reached.
func (m Milestones) At(s Status) (time.Time, bool) {
	slot := m.slot(s)
	if slot == nil || *slot == nil {
		return time.Time{}, false
	}
	return **slot, true
}
