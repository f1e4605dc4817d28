package queries

import (
	"context"
	"database/sql"
	"time"

	"production/internal/core/domain/model/production"

	"gorm.io/gorm"
)

// GetProductionQueueQueryHandler reads the production queue straight from the
// database, bypassing the domain model. Rows in preparation come first, then
// the waiting line by queue position.
//
// Example:
//
//	handler := NewGetProductionQueueQueryHandler(db)
//	query := NewGetProductionQueueQuery()
//
//	queue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get production queue: %v", err)
//	    return err
//	}
type GetProductionQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetProductionQueueQueryHandler creates a handler for production queue queries.
// Requires a GORM database connection for query execution.
func NewGetProductionQueueQueryHandler(db *gorm.DB) GetProductionQueueQueryHandler {
	return GetProductionQueueQueryHandler{db: db}
}

// Handle executes the query to retrieve the production queue.
// Returns orders in RECEIVED or IN_PREPARATION status. Orders in preparation
// have a NULL position and sort first; waiting orders follow in position
// order. An empty kitchen yields an empty slice, not an error.
func (h GetProductionQueueQueryHandler) Handle(
	ctx context.Context,
	query GetProductionQueueQuery,
) ([]GetProductionQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	queue := make([]GetProductionQueueQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			customer_name,
			status,
			queue_position,
			started_at
		FROM production_orders
		WHERE status IN (?, ?)
		ORDER BY queue_position ASC NULLS FIRST, started_at ASC
	`, production.Received, production.InPreparation).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetProductionQueueQueryResponse
		var status int
		var position sql.NullInt64
		var startedAt time.Time

		err = rows.Scan(
			&item.OrderID,
			&item.CustomerName,
			&status,
			&position,
			&startedAt,
		)
		if err != nil {
			return nil, err
		}

		item.Status = production.Status(status)
		item.StartedAt = startedAt
		if position.Valid {
			pos := int(position.Int64)
			item.QueuePosition = &pos
		}

		queue = append(queue, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return queue, nil
}
