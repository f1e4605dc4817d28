// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"production/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across the records a command touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ProductionRepoFactory provides access to the production repository within a transaction.
	ProductionRepoFactory interface {
		ProductionRepository() ports.ProductionRepository
	}

	// ProductionUoW manages transactions over production records.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.ProductionRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ProductionUoW interface {
		TxManager
		ProductionRepoFactory
	}

	// ProductionUoWFactory creates new unit of work instances.
	ProductionUoWFactory interface {
		Create() ProductionUoW
	}
)
