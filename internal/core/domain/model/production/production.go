package production

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var (
	// ErrProductionIsNotConstructed is returned when a Production instance was not
	// created through NewProduction or RestoreProduction. This ensures all records
	// are properly validated.
	ErrProductionIsNotConstructed = errors.New(
		"Production must be created via NewProduction or RestoreProduction",
	)
)

// Production represents one order's production record. It is the aggregate
// root that tracks the order from admission into the kitchen queue through
// preparation to a terminal state.
//
// Production follows these invariants:
//   - Must carry a valid externally-assigned order identifier
//   - Status changes only follow the allowed-transition table in Status
//   - A queue position is held exactly while the order awaits preparation;
//     becoming READY releases it
//   - startedAt is stamped at admission and re-stamped when preparation
//     starts; updatedAt is stamped on every status change
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. Records are never deleted; terminal
// records remain as history.
type Production struct {
	// orderID is the externally-assigned identifier of the tracked order
	orderID kernel.OrderID

	// customerName is display-only and opaque to the engine; may be empty
	customerName string

	// status is the current state in the production lifecycle
	status Status

	// queuePosition is the 1-based rank in the waiting queue, nil outside it
	queuePosition *int

	// startedAt marks admission, then the start of active preparation
	startedAt time.Time

	// updatedAt is stamped on every status change
	updatedAt *time.Time

	// finishedAt is stamped when the order becomes READY
	finishedAt *time.Time

	// deliveredAt is stamped when the order becomes FINISHED
	deliveredAt *time.Time

	// isConstructed ensures the record was created via a constructor
	isConstructed bool
}

// NewProduction admits an order into production tracking.
//
// The new record starts in RECEIVED status with the given queue position and
// startedAt stamped from now. The queue position is the caller's
// responsibility to compute (count of orders awaiting preparation plus one).
//
// Parameters:
//   - orderID: externally-assigned order identifier (must be valid)
//   - customerName: display-only name, stored as-is (may be empty)
//   - queuePosition: 1-based position in the waiting queue (must be >= 1)
//   - now: admission time
//
// Example:
//
//	id, _ := kernel.NewOrderID(42)
//	record, err := production.NewProduction(id, "Alice", 3, time.Now())
//	if err != nil {
//	    // handle validation error
//	}
func NewProduction(
	orderID kernel.OrderID,
	customerName string,
	queuePosition int,
	now time.Time,
) (*Production, error) {
	record := &Production{
		customerName:  customerName,
		status:        Received,
		startedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		record.setOrderID(orderID),
		record.setQueuePosition(queuePosition),
	); err != nil {
		return nil, err
	}

	return record, nil
}

// RestoreProduction reconstructs a production record from persistence.
// All lifecycle fields are taken as stored; the status must be valid.
// This is the only constructor that accepts a nil queue position.
func RestoreProduction(
	orderID kernel.OrderID,
	customerName string,
	status Status,
	queuePosition *int,
	startedAt time.Time,
	updatedAt, finishedAt, deliveredAt *time.Time,
) (*Production, error) {
	record := &Production{
		customerName:  customerName,
		startedAt:     startedAt,
		updatedAt:     updatedAt,
		finishedAt:    finishedAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		record.setOrderID(orderID),
		record.setStatus(status),
	); err != nil {
		return nil, err
	}

	if queuePosition != nil {
		if err := record.setQueuePosition(*queuePosition); err != nil {
			return nil, err
		}
	}

	return record, nil
}

// Validate ensures the Production instance was properly constructed.
// Returns ErrProductionIsNotConstructed otherwise. Call this when accepting
// records from outside the package, e.g. before persisting.
func (p *Production) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductionIsNotConstructed
	}
	return nil
}

// IsEqual compares two records by their order identifiers.
func (p *Production) IsEqual(other *Production) bool {
	return other != nil && p.orderID.IsEqual(other.orderID)
}

// OrderID returns the externally-assigned identifier of the tracked order.
func (p *Production) OrderID() kernel.OrderID {
	return p.orderID
}

// CustomerName returns the display-only customer name. May be empty.
func (p *Production) CustomerName() string {
	return p.customerName
}

// Status returns the current production status.
func (p *Production) Status() Status {
	return p.status
}

// QueuePosition returns the 1-based position in the waiting queue.
// Returns nil when the order is not counted in the queue.
func (p *Production) QueuePosition() *int {
	return p.queuePosition
}

// StartedAt returns the admission time or, once preparation has begun,
// the time active work started.
func (p *Production) StartedAt() time.Time {
	return p.startedAt
}

// UpdatedAt returns the time of the last status change, nil before the first.
func (p *Production) UpdatedAt() *time.Time {
	return p.updatedAt
}

// FinishedAt returns the time the order became READY, nil before that.
func (p *Production) FinishedAt() *time.Time {
	return p.finishedAt
}

// DeliveredAt returns the time the order became FINISHED, nil before that.
func (p *Production) DeliveredAt() *time.Time {
	return p.deliveredAt
}

// ChangeStatus applies a validated status transition and its side effects.
//
// The transition must be an edge of the allowed-transition table; otherwise
// an *InvalidTransitionError is returned and the record is left unchanged.
// On success the status and updatedAt are set, then the per-status effect:
//   - IN_PREPARATION: startedAt is re-stamped to now, marking the start of
//     active preparation work (the admission time is overwritten), and the
//     queue position is released because the order leaves the waiting line
//   - READY: finishedAt is stamped and any queue position is released
//   - FINISHED: deliveredAt is stamped
//   - CANCELLED: no extra effect; in particular a waiting order's queue
//     position is kept as-is
//
// Re-indexing of the remaining waiting queue after an order enters
// IN_PREPARATION spans multiple records and is handled by the application
// layer, not here.
func (p *Production) ChangeStatus(next Status, now time.Time) error {
	newStatus, err := p.status.TransitionTo(next)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.updatedAt = &now

	switch newStatus {
	case InPreparation:
		p.startedAt = now
		p.queuePosition = nil
	case Ready:
		p.finishedAt = &now
		p.queuePosition = nil
	case Finished:
		p.deliveredAt = &now
	}

	return nil
}

// AssignQueuePosition re-assigns the record's 1-based queue position.
// Used by queue re-indexing while the order is awaiting preparation.
func (p *Production) AssignQueuePosition(position int) error {
	return p.setQueuePosition(position)
}

// setOrderID validates and sets the order identifier.
// This is a private method used only during construction.
func (p *Production) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

// setStatus validates and sets the status.
// This is a private method used only during restoration.
func (p *Production) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

// setQueuePosition validates and sets the queue position.
// Positions are 1-based.
func (p *Production) setQueuePosition(position int) error {
	if position < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"queue position is invalid",
			fmt.Errorf("%d is not a positive position", position),
		)
	}
	p.queuePosition = &position
	return nil
}
