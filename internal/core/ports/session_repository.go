package ports

import (
	"context"
	"errors"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/session"
)

// ErrSessionStateChanged is returned by conditional writes when the stored
// session is no longer in the state the caller read it in.
var ErrSessionStateChanged = errors.New("session state changed since it was read")

// SessionRepository defines the persistence contract for call sessions.
type SessionRepository interface {
	// Add persists a new session.
	Add(ctx context.Context, s *session.CallSession) error

	// Update persists state, member and last error of an existing session,
	// provided its stored state still equals from. Otherwise nothing is
	// written and ErrSessionStateChanged is returned.
	Update(ctx context.Context, s *session.CallSession, from session.State) error

	// RecordFailure persists only the last error of an existing session,
	// under the same condition as Update. State and member are never
	// written.
	RecordFailure(ctx context.Context, s *session.CallSession, from session.State) error

	// Get loads a session without locking it.
	// Unknown ids are reported as *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*session.CallSession, error)

	// GetForUpdate loads a session and holds an exclusive lock on it until
	// the surrounding unit of work commits or rolls back. Concurrent callers
	// for the same id block; other sessions are unaffected.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*session.CallSession, error)
}
