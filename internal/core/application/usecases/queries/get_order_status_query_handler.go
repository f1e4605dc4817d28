package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"production/internal/core/domain/model/production"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads one order's production status from the
// database, bypassing the domain model.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the query for one order's status.
// Returns *errs.ObjectNotFoundError when the order was never admitted.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var response GetOrderStatusQueryResponse
	var status int
	var position sql.NullInt64
	var startedAt time.Time
	var updatedAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			status,
			queue_position,
			started_at,
			updated_at
		FROM production_orders
		WHERE order_id = ?
	`, query.OrderID().Value()).Row()

	err := row.Scan(
		&response.OrderID,
		&status,
		&position,
		&startedAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	response.Status = production.Status(status)
	response.StatusDescription = response.Status.Description()
	if position.Valid {
		pos := int(position.Int64)
		response.QueuePosition = &pos
	}

	response.LastUpdate = startedAt
	if updatedAt.Valid {
		response.LastUpdate = updatedAt.Time
	}

	return response, nil
}
