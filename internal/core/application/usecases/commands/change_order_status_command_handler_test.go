package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/production"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusNotifier struct{ mock.Mock }

func (m *MockStatusNotifier) NotifyStatusChanged(
	ctx context.Context, orderID kernel.OrderID, status production.Status,
) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitingRecord(t *testing.T, orderID int64, position int, startedAt time.Time) *production.Production {
	t.Helper()
	record, err := production.NewProduction(mustOrderID(t, orderID), "Customer", position, startedAt)
	require.NoError(t, err)
	return record
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := mustOrderID(t, 42)
	cmd, _ := commands.NewChangeOrderStatusCommand(id, production.Cancelled)
	record := waitingRecord(t, 42, 1, time.Now())

	repo := new(MockProductionRepository)
	uow := new(MockProductionUoW)
	notifier := new(MockStatusNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductionRepository").Return(repo).Once(),
		repo.On("GetByOrderID", ctx, id).Return(record, nil).Once(),
		repo.On("Update", mock.Anything, record).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyStatusChanged", ctx, id, production.Cancelled).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, production.Cancelled, record.Status())
	// Cancelling does not release the position; only preparation and
	// readiness do.
	require.NotNil(t, record.QueuePosition())
	assert.Equal(t, 1, *record.QueuePosition())

	// Only transitions into preparation touch the queue lock
	repo.AssertNotCalled(t, "LockQueue", mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ReindexesWaitingQueue(t *testing.T) {
	ctx := t.Context()
	base := time.Now()
	id := mustOrderID(t, 1)
	cmd, _ := commands.NewChangeOrderStatusCommand(id, production.InPreparation)

	target := waitingRecord(t, 1, 1, base)
	second := waitingRecord(t, 2, 2, base.Add(time.Minute))
	third := waitingRecord(t, 3, 3, base.Add(2*time.Minute))

	repo := new(MockProductionRepository)
	uow := new(MockProductionUoW)
	notifier := new(MockStatusNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductionRepository").Return(repo).Once(),
		repo.On("LockQueue", ctx).Return(nil).Once(),
		repo.On("GetByOrderID", ctx, id).Return(target, nil).Once(),
		repo.On("Update", mock.Anything, target).Return(nil).Once(),
		repo.On("GetByStatusOrderedByStartedAt", ctx, production.Received).
			Return([]*production.Production{second, third}, nil).Once(),
		repo.On("Update", mock.Anything, second).Return(nil).Once(),
		repo.On("Update", mock.Anything, third).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyStatusChanged", ctx, id, production.InPreparation).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, production.InPreparation, target.Status())
	assert.Nil(t, target.QueuePosition())
	require.NotNil(t, second.QueuePosition())
	assert.Equal(t, 1, *second.QueuePosition())
	require.NotNil(t, third.QueuePosition())
	assert.Equal(t, 2, *third.QueuePosition())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ReindexesEmptyQueue(t *testing.T) {
	ctx := t.Context()
	id := mustOrderID(t, 1)
	cmd, _ := commands.NewChangeOrderStatusCommand(id, production.InPreparation)
	target := waitingRecord(t, 1, 1, time.Now())

	repo := new(MockProductionRepository)
	uow := new(MockProductionUoW)
	notifier := new(MockStatusNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductionRepository").Return(repo).Once(),
		repo.On("LockQueue", ctx).Return(nil).Once(),
		repo.On("GetByOrderID", ctx, id).Return(target, nil).Once(),
		repo.On("Update", mock.Anything, target).Return(nil).Once(),
		repo.On("GetByStatusOrderedByStartedAt", ctx, production.Received).
			Return([]*production.Production{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyStatusChanged", ctx, id, production.InPreparation).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	id := mustOrderID(t, 42)
	cmd, _ := commands.NewChangeOrderStatusCommand(id, production.Received)

	now := time.Now()
	record, err := production.RestoreProduction(
		id, "Alice", production.Ready, nil, now, &now, &now, nil,
	)
	require.NoError(t, err)

	repo := new(MockProductionRepository)
	uow := new(MockProductionUoW)
	notifier := new(MockStatusNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductionRepository").Return(repo).Once(),
		repo.On("GetByOrderID", ctx, id).Return(record, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, production.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "READY")
	assert.Contains(t, err.Error(), "RECEIVED")

	assert.Equal(t, production.Ready, record.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := mustOrderID(t, 99)
	cmd, _ := commands.NewChangeOrderStatusCommand(id, production.InPreparation)

	repo := new(MockProductionRepository)
	uow := new(MockProductionUoW)
	notifier := new(MockStatusNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductionRepository").Return(repo).Once(),
		repo.On("LockQueue", ctx).Return(nil).Once(),
		repo.On("GetByOrderID", ctx, id).
			Return(nil, errs.NewObjectNotFoundError("orderId", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_NotifierFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	id := mustOrderID(t, 42)
	cmd, _ := commands.NewChangeOrderStatusCommand(id, production.Cancelled)
	record := waitingRecord(t, 42, 1, time.Now())

	repo := new(MockProductionRepository)
	uow := new(MockProductionUoW)
	notifier := new(MockStatusNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductionRepository").Return(repo).Once(),
		repo.On("GetByOrderID", ctx, id).Return(record, nil).Once(),
		repo.On("Update", mock.Anything, record).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyStatusChanged", ctx, id, production.Cancelled).
			Return(errors.New("broker unavailable")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ChangeOrderStatusCommand{} // not constructed properly
	factory := new(MockProductionUoWFactory)
	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockStatusNotifier), discardLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestChangeOrderStatusCommandHandler_Handle_CommitErrorSkipsNotification(t *testing.T) {
	ctx := t.Context()
	id := mustOrderID(t, 42)
	cmd, _ := commands.NewChangeOrderStatusCommand(id, production.Cancelled)
	record := waitingRecord(t, 42, 1, time.Now())

	repo := new(MockProductionRepository)
	uow := new(MockProductionUoW)
	notifier := new(MockStatusNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductionRepository").Return(repo).Once(),
		repo.On("GetByOrderID", ctx, id).Return(record, nil).Once(),
		repo.On("Update", mock.Anything, record).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockProductionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything, mock.Anything)
}
