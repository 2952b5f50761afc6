package ports

import (
	"context"
	"errors"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/order"
)

// ErrOrderAlreadyExists is returned by AddIfAbsent when the session already
// has an order.
var ErrOrderAlreadyExists = errors.New("order already exists for session")

// OrderRepository defines the persistence contract for committed orders.
type OrderRepository interface {
	// AddIfAbsent inserts the order unless one already exists for its
	// session. Uniqueness is enforced by storage, independently of any lock,
	// and a collision is reported as ErrOrderAlreadyExists. A collision must
	// leave the surrounding unit of work usable.
	AddIfAbsent(ctx context.Context, o *order.Order) error

	// GetBySession returns the order committed for a session.
	// Missing orders are reported as *errs.ObjectNotFoundError.
	GetBySession(ctx context.Context, sessionID kernel.UUID) (*order.Order, error)
}
