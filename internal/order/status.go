package order

import (
	"time"

	"github.com/evstore/storefront/internal/apperr"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusConfirmed  Status = "confirmed"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// transitions is the full set of allowed edges. Forward progress is strictly
// sequential; cancelled and refunded are side branches.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusShipped},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusRefunded},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusConfirmed, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus validates a status name coming from a caller.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", apperr.Invalid("status", "must be one of pending, processing, confirmed, shipped, delivered, cancelled, refunded")
	}
	return s, nil
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition computes the lifecycle after moving cur to the status to at time
// now. The input is never modified; an illegal edge returns a
// *apperr.TransitionError.
//
// Entering processing, shipped or delivered stamps the matching timestamp if
// it is unset. A new stamp is never earlier than a stamp already set, so the
// timestamps stay non-decreasing even if clocks disagree.
func Transition(cur Lifecycle, to Status, now time.Time) (Lifecycle, error) {
	if !to.Valid() {
		return cur, apperr.Invalid("status", "unknown status "+string(to))
	}
	if !CanTransition(cur.Status, to) {
		return cur, &apperr.TransitionError{From: string(cur.Status), To: string(to)}
	}

	next := cur
	next.Status = to
	stamp := now.UTC()
	for _, t := range []*time.Time{cur.ProcessedAt, cur.ShippedAt, cur.DeliveredAt} {
		if t != nil && t.After(stamp) {
			stamp = *t
		}
	}

	switch to {
	case StatusProcessing:
		if next.ProcessedAt == nil {
			next.ProcessedAt = &stamp
		}
	case StatusShipped:
		if next.ShippedAt == nil {
			next.ShippedAt = &stamp
		}
	case StatusDelivered:
		if next.DeliveredAt == nil {
			next.DeliveredAt = &stamp
		}
	}
	return next, nil
}
