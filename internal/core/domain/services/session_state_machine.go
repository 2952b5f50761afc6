package services

import (
	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
	"callcenter/internal/core/domain/model/session"
)

// SessionStateMachine holds the transition rules of the intake workflow.
//
// Transition rules:
//
//	state      event   guard                          result
//	COMPLETED  any     -                              reject ALREADY_COMPLETED
//	ASK_ORDER  lookup  -                              reject INVALID_STATE
//	ASK_MEMBER order   -                              reject INVALID_STATE
//	ASK_MEMBER lookup  member found and active        advance to ASK_ORDER
//	ASK_MEMBER lookup  member missing or inactive     record MEMBER_NOT_FOUND
//	ASK_ORDER  order   no member on record            reject NO_MEMBER
//	ASK_ORDER  order   order number starts with 0     record INVALID_ORDER
//	ASK_ORDER  order   valid                          advance to COMPLETED
//
// Input-format checks happen before the machine is consulted; it only ever
// sees well-formed member and order numbers.
//
// Example usage:
//
//	machine := services.NewSessionStateMachine()
//	decision := machine.DecideLookup(s, found)
//	if err := s.Apply(decision, now); err != nil {
//	    return err
//	}
type SessionStateMachine struct{}

// NewSessionStateMachine creates a SessionStateMachine.
func NewSessionStateMachine() SessionStateMachine {
	return SessionStateMachine{}
}

// DecideLookup evaluates a member-lookup event. found is the directory hit,
// or nil when no member with the requested number exists.
func (SessionStateMachine) DecideLookup(s *session.CallSession, found *member.Member) session.Decision {
	current := s.State()

	if current.IsTerminal() {
		return session.Reject(current, session.CodeAlreadyCompleted)
	}

	if current != session.AskMember {
		return session.Reject(current, session.CodeInvalidState)
	}

	if found == nil || found.Validate() != nil || !found.IsActive() {
		return session.RecordFailure(current, session.CodeMemberNotFound)
	}

	return session.Advance(session.AskOrder, found)
}

// DecideOrder evaluates an order-submission event. An admitted decision
// still depends on the committer winning the session's order slot.
func (SessionStateMachine) DecideOrder(s *session.CallSession, orderNumber kernel.DigitCode) session.Decision {
	current := s.State()

	if current.IsTerminal() {
		return session.Reject(current, session.CodeAlreadyCompleted)
	}

	if current != session.AskOrder {
		return session.Reject(current, session.CodeInvalidState)
	}

	if s.Member() == nil {
		return session.Reject(current, session.CodeNoMember)
	}

	if orderNumber.HasLeadingZero() {
		return session.RecordFailure(current, session.CodeInvalidOrder)
	}

	return session.Advance(session.Completed, nil)
}
