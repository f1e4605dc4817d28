package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and scopes repository access to one
// transaction. Client code must explicitly manage the transaction lifecycle.
//
// The queue re-indexing performed on transition into IN_PREPARATION reads and
// rewrites many records; running it inside a single UnitOfWork is what keeps
// positions contiguous under concurrent admissions and transitions.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ProductionRepository returns a ProductionRepository bound to the current
	// transaction started by Begin().
	ProductionRepository() ProductionRepository
}
