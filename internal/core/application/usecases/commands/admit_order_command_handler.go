package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/production"
)

// AdmitOrderCommandHandler handles the business logic for order admission.
// Registers an order into production tracking exactly once, assigning it the
// next queue position behind every order currently awaiting preparation.
//
// Example:
//
//	handler := NewAdmitOrderCommandHandler(uowFactory)
//	cmd, _ := NewAdmitOrderCommand(orderID, "Alice")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("admission failed: %w", err)
//	}
//	// The order is now RECEIVED and visible on the production queue
type AdmitOrderCommandHandler struct {
	uowFactory ProductionUoWFactory
}

// NewAdmitOrderCommandHandler creates a handler for order admission operations.
// Requires a ProductionUoWFactory for transactional persistence.
func NewAdmitOrderCommandHandler(uowFactory ProductionUoWFactory) AdmitOrderCommandHandler {
	return AdmitOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the admission command.
//
// The existence check, queue-position computation, and insert run in one
// transaction holding the queue lock, so concurrent admissions cannot count
// the same snapshot and assign duplicate positions. Re-admitting a tracked
// order id returns without effect.
func (h *AdmitOrderCommandHandler) Handle(ctx context.Context, cmd AdmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProductionRepository()

	if err := repo.LockQueue(ctx); err != nil {
		return err
	}

	exists, err := repo.ExistsByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	awaiting, err := repo.CountByStatusIn(ctx, []production.Status{
		production.Received,
		production.InPreparation,
	})
	if err != nil {
		return err
	}

	record, err := production.NewProduction(cmd.OrderID(), cmd.CustomerName(), awaiting+1, time.Now())
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
