// Package lifecycle encodes the forward-only status pipelines that orders and
// vehicles move through. A pipeline is a fixed, totally ordered list of
// statuses; a transition is legal when it does not move to an earlier rank.
// Frozen statuses (an order on HOLD or DELETED) have no rank and can only be
// entered or left through dedicated operations on the aggregate.
package lifecycle

import (
	"logistics/internal/pkg/errs"
)

// Status is satisfied by the status enums of the aggregates.
type Status interface {
	comparable
	String() string
}

// Sequence maps each status of a pipeline to its rank.
type Sequence[S Status] struct {
	entity  string
	ordered []S
	ranks   map[S]int
	frozen  map[S]struct{}
}

// NewSequence builds a pipeline from statuses listed in physical order.
// Statuses passed as frozen must not appear in ordered.
func NewSequence[S Status](entity string, ordered []S, frozen ...S) Sequence[S] {
	seq := Sequence[S]{
		entity:  entity,
		ordered: append([]S(nil), ordered...),
		ranks:   make(map[S]int, len(ordered)),
		frozen:  make(map[S]struct{}, len(frozen)),
	}
	for i, s := range ordered {
		seq.ranks[s] = i
	}
	for _, s := range frozen {
		seq.frozen[s] = struct{}{}
	}
	return seq
}

// Entity names the aggregate the pipeline belongs to, used in error messages.
func (q Sequence[S]) Entity() string {
	return q.entity
}

// Statuses returns the pipeline in order.
func (q Sequence[S]) Statuses() []S {
	return append([]S(nil), q.ordered...)
}

// Rank returns the position of s and whether s belongs to the pipeline.
func (q Sequence[S]) Rank(s S) (int, bool) {
	r, ok := q.ranks[s]
	return r, ok
}

// Contains reports whether s has a rank.
func (q Sequence[S]) Contains(s S) bool {
	_, ok := q.ranks[s]
	return ok
}

// IsFrozen reports whether s is one of the frozen statuses.
func (q Sequence[S]) IsFrozen(s S) bool {
	_, ok := q.frozen[s]
	return ok
}

// IsAtOrAfter reports whether s is ranked at or after ref. Unknown statuses are never at or after anything.
func (q Sequence[S]) IsAtOrAfter(s, ref S) bool {
	rs, ok := q.ranks[s]
	if !ok {
		return false
	}
	rr, ok := q.ranks[ref]
	return ok && rs >= rr
}

// AssertForward validates current -> next. Staying on the same status is a no-op success.
//
// Errors (all *errs.TransitionError):
//   - errs.ErrFrozenEntity when either side is frozen
//   - errs.ErrInvalidTransition when next is not in the pipeline
//   - errs.ErrUnsupportedSource when current is not in the pipeline
//   - errs.ErrBackwardTransition when next is ranked before current
func (q Sequence[S]) AssertForward(current, next S) error {
	if q.IsFrozen(current) || q.IsFrozen(next) {
		return q.fail(errs.ErrFrozenEntity, current, next)
	}

	nextRank, ok := q.ranks[next]
	if !ok {
		return q.fail(errs.ErrInvalidTransition, current, next)
	}

	currentRank, ok := q.ranks[current]
	if !ok {
		return q.fail(errs.ErrUnsupportedSource, current, next)
	}

	if nextRank < currentRank {
		return q.fail(errs.ErrBackwardTransition, current, next)
	}

	return nil
}

func (q Sequence[S]) fail(kind error, current, next S) error {
	return errs.NewTransitionError(kind, q.entity, current.String(), next.String())
}
