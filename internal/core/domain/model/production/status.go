package production

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
// Use errors.Is against it to classify rejected status changes.
var ErrInvalidTransition = errors.New("status transition is not allowed")

// Status represents the lifecycle state of an order in production.
// It implements a state machine with a fixed transition table:
//
//	RECEIVED ──┬──> IN_PREPARATION ──┬──> READY ──> FINISHED
//	           │                     │
//	           └────> CANCELLED <────┘
//
// WAITING_PAYMENT belongs to the status set but has no transitions wired to
// it in this slice; it is reachable only from an external payment flow.
// FINISHED and CANCELLED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// WaitingPayment marks an order whose payment has not been confirmed yet.
	// No transition in this slice reaches it or leaves it.
	WaitingPayment

	// Received is the status assigned at admission. Orders in this status
	// hold a queue position and wait for preparation to start.
	Received

	// InPreparation marks an order the kitchen is actively working on.
	InPreparation

	// Ready marks a prepared order awaiting pickup. Entering it releases
	// the order's queue position.
	Ready

	// Finished marks a delivered order. Terminal.
	Finished

	// Cancelled marks an abandoned order. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their symbolic names.
// The symbolic names are the wire representation used at system boundaries.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		WaitingPayment: "WAITING_PAYMENT",
		Received:       "RECEIVED",
		InPreparation:  "IN_PREPARATION",
		Ready:          "READY",
		Finished:       "FINISHED",
		Cancelled:      "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		WaitingPayment: "WAITING_PAYMENT",
		Received:       "RECEIVED",
		InPreparation:  "IN_PREPARATION",
		Ready:          "READY",
		Finished:       "FINISHED",
		Cancelled:      "CANCELLED",
	}
}

// getStatusDescriptions returns the customer-facing display text per status.
func getStatusDescriptions() map[Status]string {
	return map[Status]string{
		WaitingPayment: "Awaiting payment",
		Received:       "Order received",
		InPreparation:  "In preparation",
		Ready:          "Ready for pickup",
		Finished:       "Finished",
		Cancelled:      "Cancelled",
	}
}

// allowedTransitions returns the fixed allowed-edge table keyed by current
// status. A status missing from the table has zero allowed outgoing edges.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Received:      {InPreparation, Cancelled},
		InPreparation: {Ready, Cancelled},
		Ready:         {Finished},
		Finished:      {},
		Cancelled:     {},
	}
}

// StatusFromString parses a status from its symbolic name.
// Matching is case-insensitive; an unrecognized symbol is rejected before it
// can reach the core.
//
// Example:
//
//	status, err := production.StatusFromString("in_preparation")
//	// status == production.InPreparation
func StatusFromString(value string) (Status, error) {
	symbol := strings.ToUpper(strings.TrimSpace(value))
	for status, name := range getValidStatusStrings() {
		if name == symbol {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a recognized status symbol", value),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range value are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the symbolic name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Description returns the customer-facing display text for the status.
func (s Status) Description() string {
	if d, ok := getStatusDescriptions()[s]; ok {
		return d
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Finished || s == Cancelled
}

// IsAwaitingPreparation reports whether an order in this status is counted in
// the visible production queue (and therefore holds a queue position).
func (s Status) IsAwaitingPreparation() bool {
	return s == Received || s == InPreparation
}

// CanTransitionTo reports whether the edge (s, next) exists in the
// allowed-transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge (s, next) and returns the new status.
//
// Returns:
//   - (next, nil) when the transition is allowed
//   - (Unknown, *InvalidTransitionError) when it is not
//
// This method is used by Production.ChangeStatus to enforce the lifecycle.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, NewInvalidTransitionError(s, next)
	}
	return next, nil
}

// InvalidTransitionError carries the pair of statuses of a rejected change so
// callers can report both sides of the illegal edge.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the edge (from, to).
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
