package commands

import (
	"context"
	"log/slog"
	"time"

	"production/internal/core/domain/model/production"
	"production/internal/core/ports"
)

// ChangeOrderStatusCommandHandler is the transition engine. It validates and
// applies one status change, re-indexes the waiting queue when an order
// enters preparation, and invokes the notification extension point after a
// successful change.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, production.Ready)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status change failed: %w", err)
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory ProductionUoWFactory
	notifier   ports.StatusNotifier
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates the transition engine handler.
// The notifier is the post-transition extension point; pass
// ports.NoopStatusNotifier when no notification channel is configured.
func NewChangeOrderStatusCommandHandler(
	uowFactory ProductionUoWFactory,
	notifier ports.StatusNotifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "transition_engine"),
	}
}

// Handle processes one status change.
//
// The record fetch, transition, queue re-indexing, and writes all run in a
// single transaction: a rejected transition leaves no partial writes. The
// fetch locks the order's row until commit, so two concurrent transitions on
// the same order serialize and the second validates against the committed
// status instead of a stale snapshot. Transitions into IN_PREPARATION also
// hold the queue lock, so the read-then-rewrite of the waiting queue cannot
// interleave with concurrent admissions or other re-index runs. The
// transition itself (legal edges, timestamp stamping, position release) is
// enforced by Production.ChangeStatus.
//
// On transition into IN_PREPARATION the orders still in RECEIVED status are
// re-indexed to contiguous positions 1..K by startedAt ascending, closing the
// gap left by the order that just left the waiting line. The transitioned
// record is persisted before the re-index query so it is not part of its own
// re-index input.
//
// After a successful commit the notifier is invoked; notification failures
// are logged and never surfaced, so the extension point cannot alter the
// transition contract.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	// Entering preparation rewrites the waiting line; take the queue lock
	// before the row lock so concurrent re-index runs and admissions
	// serialize without deadlocking.
	if cmd.NewStatus() == production.InPreparation {
		if err := repo.LockQueue(ctx); err != nil {
			return err
		}
	}

	record, err := repo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = record.ChangeStatus(cmd.NewStatus(), time.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, record); err != nil {
		return err
	}

	if cmd.NewStatus() == production.InPreparation {
		if err = h.reindexWaitingQueue(ctx, repo); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.NotifyStatusChanged(ctx, cmd.OrderID(), cmd.NewStatus()); err != nil {
		h.logger.WarnContext(ctx, "Status change notification failed",
			"order_id", cmd.OrderID().String(),
			"status", cmd.NewStatus().String(),
			"error", err,
		)
	}

	return nil
}

// reindexWaitingQueue assigns contiguous positions 1..K to the orders still
// awaiting preparation, ordered by startedAt ascending. Runs unconditionally,
// an empty waiting line included.
func (h *ChangeOrderStatusCommandHandler) reindexWaitingQueue(
	ctx context.Context,
	repo ports.ProductionRepository,
) error {
	waiting, err := repo.GetByStatusOrderedByStartedAt(ctx, production.Received)
	if err != nil {
		return err
	}

	for i, record := range waiting {
		if err = record.AssignQueuePosition(i + 1); err != nil {
			return err
		}
		if err = repo.Update(ctx, record); err != nil {
			return err
		}
	}

	return nil
}
