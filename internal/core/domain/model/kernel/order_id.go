package kernel

import (
	"fmt"
	"strconv"

	"production/internal/pkg/errs"
)

// ErrOrderIDIsNotConstructed indicates that an OrderID was not created through
// NewOrderID or OrderIDFromString. This error is returned when validating a
// zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via NewOrderID or OrderIDFromString",
)

// OrderID is a value object for the identifier an order carries when it enters
// production tracking. The identifier is assigned upstream by the order
// acceptance flow; this system never generates one.
//
// OrderID is immutable and the zero value is invalid. Use one of the factory
// functions to construct it:
//
//	id, err := kernel.NewOrderID(42)
//	id, err := kernel.OrderIDFromString("42")
type OrderID struct {
	value int64
}

// NewOrderID creates an OrderID from its numeric value.
// Identifiers are positive; zero and negative values are rejected.
func NewOrderID(value int64) (OrderID, error) {
	if value <= 0 {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"order id is invalid",
			fmt.Errorf("%d is not a positive identifier", value),
		)
	}
	return OrderID{value: value}, nil
}

// OrderIDFromString parses an OrderID from its decimal string representation.
// This is used when reconstructing identifiers from URL paths or messages.
func OrderIDFromString(s string) (OrderID, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("order id is invalid", err)
	}
	return NewOrderID(value)
}

// Value returns the numeric value of the identifier.
func (id OrderID) Value() int64 {
	return id.value
}

// String returns the decimal string representation of the identifier.
func (id OrderID) String() string {
	return strconv.FormatInt(id.value, 10)
}

// IsEqual compares two identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// Validate checks that the OrderID was created through a factory function.
// Returns ErrOrderIDIsNotConstructed for a zero value.
func (id OrderID) Validate() error {
	if id.value == 0 {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
