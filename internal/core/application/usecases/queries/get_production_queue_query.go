package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/production"
	"production/internal/pkg/guard"
)

var (
	ErrGetProductionQueueQueryIsNotConstructed = errors.New(
		"GetProductionQueueQuery must be created via NewGetProductionQueueQuery constructor",
	)
)

// GetProductionQueueQuery retrieves every order currently in the kitchen's
// hands: the ones waiting to be prepared and the ones being prepared.
//
// Example:
//
//	query := NewGetProductionQueueQuery()
//	handler := NewGetProductionQueueQueryHandler(db)
//
//	queue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get production queue: %w", err)
//	}
//
//	for _, item := range queue {
//	    fmt.Printf("order %d: %s\n", item.OrderID, item.Status)
//	}
type GetProductionQueueQuery struct {
	guard guard.ConstructorGuard
}

// NewGetProductionQueueQuery creates a query to retrieve the production queue.
// This is a parameterless query.
func NewGetProductionQueueQuery() GetProductionQueueQuery {
	return GetProductionQueueQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetProductionQueueQueryIsNotConstructed if validation fails.
func (q GetProductionQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetProductionQueueQueryIsNotConstructed)
}

// GetProductionQueueQueryResponse is one row of the production queue view.
// Orders being prepared carry no queue position.
type GetProductionQueueQueryResponse struct {
	OrderID       int64
	CustomerName  string
	Status        production.Status
	QueuePosition *int
	StartedAt     time.Time
}
