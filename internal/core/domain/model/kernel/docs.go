// Package kernel provides shared domain value objects for the production
// tracking system.
//
// The package includes:
//   - OrderID: the externally-assigned identifier of an accepted order
//
// Value objects in this package are immutable, validated on construction,
// and safe for concurrent use. The zero value of each type is invalid and
// must be created through the provided factory functions.
package kernel
