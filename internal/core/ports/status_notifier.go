package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/production"
)

// StatusNotifier is the extension point invoked after a successful status
// transition. It exists so customer notification can be added without touching
// the transition engine's contract; implementations must not influence the
// outcome of the transition that triggered them.
type StatusNotifier interface {
	// NotifyStatusChanged reports that the order now has the given status.
	NotifyStatusChanged(ctx context.Context, orderID kernel.OrderID, status production.Status) error
}

// NoopStatusNotifier is the default StatusNotifier used when no notification
// channel is configured.
type NoopStatusNotifier struct{}

// NotifyStatusChanged discards the notification.
func (NoopStatusNotifier) NotifyStatusChanged(context.Context, kernel.OrderID, production.Status) error {
	return nil
}
