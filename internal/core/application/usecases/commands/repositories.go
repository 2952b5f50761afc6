// Package commands contains the intake operations that modify state.
// Each command validates its input in its constructor, so a handler only
// ever sees well-formed member and order numbers; each handler runs inside
// its own unit of work.
package commands

import (
	"context"

	"callcenter/internal/core/ports"
)

// Unit of Work interfaces give command handlers transactional access to storage.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SessionRepoFactory provides the session repository bound to a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// OrderRepoFactory provides the order repository bound to a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SessionUoW manages transactions for session-only operations
	// (creation and member lookup).
	SessionUoW interface {
		TxManager
		SessionRepoFactory
	}

	// SessionUoWFactory creates new session unit of work instances.
	SessionUoWFactory interface {
		Create() SessionUoW
	}

	// UoW spans sessions and orders; the order commit needs both in one
	// transaction.
	UoW interface {
		TxManager
		SessionRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for the order commit.
	UoWFactory interface {
		Create() UoW
	}
)
