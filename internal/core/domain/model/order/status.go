package order

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// ErrInvalidStatusTransition is the sentinel for illegal lifecycle changes.
// Use errors.Is against it to classify an InvalidStatusTransitionError.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// InvalidStatusTransitionError reports an illegal state change request,
// carrying the current and the requested status so callers can surface a
// precise rejection message. The order is left unmodified when this error is
// returned.
type InvalidStatusTransitionError struct {
	Current   Status
	Requested Status
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s is not allowed, valid next statuses are: %s",
		ErrInvalidStatusTransition, e.Current, e.Requested, describeNextStatuses(e.Current))
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

func describeNextStatuses(s Status) string {
	next := s.NextStatuses()
	if len(next) == 0 {
		return "none (terminal status)"
	}
	names := make([]string, len(next))
	for i, n := range next {
		names[i] = n.String()
	}
	return strings.Join(names, ", ")
}

// Status represents the lifecycle state of an order.
// It implements a state machine with a single canonical transition table to
// ensure orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> OutForDelivery ──> Delivered
//	   │            │             │           │              │
//	   └────────────┴─────────────┴───────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly checked-out order.
	Pending

	// Confirmed indicates the restaurant has accepted the order.
	Confirmed

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// Ready indicates the order is packed and awaiting pickup.
	Ready

	// OutForDelivery indicates a courier is carrying the order.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was aborted. Terminal, reachable from
	// every non-terminal status.
	Cancelled
)

// getStatusStrings returns the string representation for every Status value,
// including Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		Ready:          "Ready",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// allowedTransitions is the canonical transition table of the order lifecycle.
// Every status-change request is validated against this table and nothing
// else; the timestamp stamping in Order.TransitionTo derives from the same
// target values.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {Preparing, Cancelled},
		Preparing:      {Ready, Cancelled},
		Ready:          {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered, Cancelled},
		Delivered:      {},
		Cancelled:      {},
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as used on the wire ("Pending",
// "OutForDelivery", ...). Returns an error for unrecognized names; "Unknown"
// is not accepted.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// NextStatuses returns the statuses reachable from s in one legal transition.
// Terminal and invalid statuses yield an empty slice.
func (s Status) NextStatuses() []Status {
	return allowedTransitions()[s]
}

// CanTransitionTo validates a requested lifecycle change without performing
// it. Returns nil when the transition is legal, or an
// InvalidStatusTransitionError carrying the current and requested status.
func (s Status) CanTransitionTo(target Status) error {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == target {
			return nil
		}
	}
	return &InvalidStatusTransitionError{Current: s, Requested: target}
}
