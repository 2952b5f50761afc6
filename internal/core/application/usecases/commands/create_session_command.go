package commands

import (
	"errors"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/pkg/guard"
)

var ErrCreateSessionCommandIsNotConstructed = errors.New(
	"CreateSessionCommand must be created via NewCreateSessionCommand constructor",
)

// CreateSessionCommand opens a new call session in ASK_MEMBER.
//
// Example:
//
//	cmd, err := NewCreateSessionCommand(kernel.NewUUID())
//	if err != nil {
//	    return err
//	}
//	s, err := handler.Handle(ctx, cmd)
type CreateSessionCommand struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateSessionCommand creates the command for a caller-supplied session id.
func NewCreateSessionCommand(sessionID kernel.UUID) (CreateSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CreateSessionCommand{}, err
	}

	return CreateSessionCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateSessionCommand) Validate() error {
	return c.guard.Validate(ErrCreateSessionCommandIsNotConstructed)
}

// SessionID returns the identifier of the session to create.
func (c CreateSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}
