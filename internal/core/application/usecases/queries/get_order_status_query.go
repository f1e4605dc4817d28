package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/production"
	"production/internal/pkg/guard"
)

var (
	ErrGetOrderStatusQueryIsNotConstructed = errors.New(
		"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
	)
)

// GetOrderStatusQuery retrieves the production status of a single order.
// Works for any tracked order, terminal statuses included.
//
// Example:
//
//	orderID, _ := kernel.NewOrderID(42)
//	query, err := NewGetOrderStatusQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid status request: %w", err)
//	}
//
//	handler := NewGetOrderStatusQueryHandler(db)
//	status, err := handler.Handle(ctx, query)
type GetOrderStatusQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for one order's production status.
// The order id must be valid.
func NewGetOrderStatusQuery(orderID kernel.OrderID) (GetOrderStatusQuery, error) {
	query := GetOrderStatusQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatusQueryIsNotConstructed if validation fails.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the identifier of the order being queried.
func (q GetOrderStatusQuery) OrderID() kernel.OrderID {
	return q.orderID
}

func (q *GetOrderStatusQuery) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderStatusQueryResponse describes where one order stands in production.
// LastUpdate reflects the most recent status change, or the admission time
// when the order has never left RECEIVED.
type GetOrderStatusQueryResponse struct {
	OrderID           int64
	Status            production.Status
	StatusDescription string
	QueuePosition     *int
	LastUpdate        time.Time
}
