package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/production"
)

// ProductionRepository defines the persistence contract for production records.
// The core treats this as its leaf dependency; concrete persistence lives in
// the adapters layer.
type ProductionRepository interface {
	// Add persists a new production record.
	// The record must be valid and not already exist for its order id.
	Add(ctx context.Context, aggregate *production.Production) error

	// Update persists changes to an existing production record.
	Update(ctx context.Context, aggregate *production.Production) error

	// GetByOrderID retrieves the production record for an order.
	// Returns *errs.ObjectNotFoundError when no record exists. Within a
	// transaction the record stays locked until commit, so concurrent
	// transitions on the same order serialize.
	GetByOrderID(ctx context.Context, orderID kernel.OrderID) (*production.Production, error)

	// LockQueue serializes queue shape changes within the current
	// transaction. Admission and queue re-indexing take this lock so
	// positions stay distinct and contiguous under concurrency.
	LockQueue(ctx context.Context) error

	// ExistsByOrderID reports whether a production record exists for the order.
	ExistsByOrderID(ctx context.Context, orderID kernel.OrderID) (bool, error)

	// CountByStatusIn counts records whose status is in the given set.
	// Used by admission to compute the next queue position.
	CountByStatusIn(ctx context.Context, statuses []production.Status) (int, error)

	// GetAllByStatusIn retrieves all records whose status is in the given set.
	GetAllByStatusIn(ctx context.Context, statuses []production.Status) ([]*production.Production, error)

	// GetByStatusOrderedByStartedAt retrieves all records in the given status
	// ordered by startedAt ascending. Used by queue re-indexing.
	GetByStatusOrderedByStartedAt(ctx context.Context, status production.Status) ([]*production.Production, error)
}
