package commands

import (
	"errors"
	"fmt"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/pkg/guard"
)

var ErrLookupMemberCommandIsNotConstructed = errors.New(
	"LookupMemberCommand must be created via NewLookupMemberCommand constructor",
)

// LookupMemberCommand identifies the caller of a session by member number.
//
// Example:
//
//	cmd, err := NewLookupMemberCommand(sessionID, "12345678")
//	if err != nil {
//	    failure := ValidationFailure(err) // VALIDATION_ERROR, nothing persisted
//	}
//	outcome, err := handler.Handle(ctx, cmd)
type LookupMemberCommand struct {
	sessionID    kernel.UUID
	memberNumber kernel.DigitCode

	guard guard.ConstructorGuard
}

// NewLookupMemberCommand validates the member number format.
// A malformed number yields an error wrapping ErrMemberNumberIsInvalid.
func NewLookupMemberCommand(sessionID kernel.UUID, memberNumber string) (LookupMemberCommand, error) {
	cmd := LookupMemberCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setMemberNumber(memberNumber),
	); err != nil {
		return LookupMemberCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LookupMemberCommand) Validate() error {
	return c.guard.Validate(ErrLookupMemberCommandIsNotConstructed)
}

// SessionID returns the target session.
func (c LookupMemberCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// MemberNumber returns the member number to look up.
func (c LookupMemberCommand) MemberNumber() kernel.DigitCode {
	return c.memberNumber
}

func (c *LookupMemberCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.sessionID = id
	return nil
}

func (c *LookupMemberCommand) setMemberNumber(raw string) error {
	number, err := kernel.NewDigitCode("member number", raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMemberNumberIsInvalid, err)
	}
	c.memberNumber = number
	return nil
}
