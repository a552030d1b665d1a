// Package repository defines the interfaces for data access layer
package repository

import (
	"context"
)

// Transactor runs a unit of work inside one storage transaction
type Transactor interface {
	// ExecuteInTransaction executes fn within a database transaction.
	// The function receives a transaction context that must be passed to every
	// repository call that belongs to the unit of work. The transaction is
	// rolled back when fn returns an error. Nested calls join the outer
	// transaction.
	ExecuteInTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
