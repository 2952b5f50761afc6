package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary across session and order storage.
// Everything done through its repositories between Begin and Commit
// succeeds or fails together.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Calling it after Commit is a harmless no-op error.
	Rollback(ctx context.Context) error

	// SessionRepository returns a repository bound to the current transaction.
	SessionRepository() SessionRepository

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
}
