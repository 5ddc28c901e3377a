package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PLACED ──> PREPARING ──> OUT_FOR_DELIVERY ──> DELIVERED
//	   │           │
//	   └───────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal. Any edge not drawn above is rejected
// with an InvalidTransitionError; there is no unconditional overwrite.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Placed
	Preparing
	OutForDelivery
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Placed:         "PLACED",
	Preparing:      "PREPARING",
	OutForDelivery: "OUT_FOR_DELIVERY",
	Delivered:      "DELIVERED",
	Cancelled:      "CANCELLED",
}

// transitions is the single source of truth for legal status edges.
var transitions = map[Status][]Status{
	Placed:         {Preparing, Cancelled},
	Preparing:      {OutForDelivery, Cancelled},
	OutForDelivery: {Delivered},
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Placed, Preparing, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts the persisted or transport form ("OUT_FOR_DELIVERY")
// into a Status. Matching ignores case and surrounding spaces.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known order status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether s -> target is an edge of the lifecycle graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when s -> target is legal.
//
// Returns:
//   - (target, nil) on a legal edge
//   - (Unknown, *errs.ValueIsInvalidError) if target is not a valid status
//   - (Unknown, *errs.InvalidTransitionError) for every other pair
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionErrorWithReason(s, target, "order is in a terminal state")
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s, target)
	}
	return target, nil
}

// ValidateAssign checks that a delivery partner may be bound in this status.
// Only orders that have not yet left the restaurant accept an assignment.
func (s Status) ValidateAssign() error {
	if s != Placed && s != Preparing {
		return errs.NewInvalidTransitionErrorWithReason(
			s, OutForDelivery,
			"a delivery partner can only be assigned to PLACED or PREPARING orders",
		)
	}
	return nil
}
