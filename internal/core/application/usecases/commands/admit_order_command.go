package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrAdmitOrderCommandIsNotConstructed = errors.New(
		"AdmitOrderCommand must be created via NewAdmitOrderCommand constructor",
	)
)

// AdmitOrderCommand represents a request to register an accepted order into
// production tracking. Admission is idempotent per order id: re-admitting an
// already tracked order has no effect.
//
// Example:
//
//	orderID, _ := kernel.NewOrderID(42)
//	cmd, err := commands.NewAdmitOrderCommand(orderID, "Alice")
//	if err != nil {
//	    return fmt.Errorf("invalid admission data: %w", err)
//	}
//
//	handler := commands.NewAdmitOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to admit order: %w", err)
//	}
type AdmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.OrderID
	customerName string

	guard guard.ConstructorGuard
}

// NewAdmitOrderCommand creates a command to admit an order into production.
// The order id must be valid; the customer name is display-only and stored
// as-is, empty included.
func NewAdmitOrderCommand(orderID kernel.OrderID, customerName string) (AdmitOrderCommand, error) {
	cmd := AdmitOrderCommand{
		customerName: customerName,
		guard:        guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AdmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdmitOrderCommandIsNotConstructed if validation fails.
func (c AdmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdmitOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to admit.
func (c AdmitOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// CustomerName returns the display-only customer name.
func (c AdmitOrderCommand) CustomerName() string {
	return c.customerName
}

func (c *AdmitOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
