// Package production provides the domain model for tracking accepted orders
// through the kitchen production lifecycle.
//
// The package includes:
//   - Production: the aggregate root for one order's production record
//   - Status: a state machine over the fixed production lifecycle
//
// Key business rules:
//   - There is exactly one production record per order identifier
//   - Status changes only follow the fixed allowed-transition table:
//     RECEIVED -> IN_PREPARATION | CANCELLED,
//     IN_PREPARATION -> READY | CANCELLED,
//     READY -> FINISHED; FINISHED and CANCELLED are terminal
//   - A queue position is held only while the order waits in RECEIVED and is
//     released when preparation begins
//   - Lifecycle timestamps are stamped by the transitions that reach them
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package production
