package session

import (
	"errors"
	"fmt"
	"time"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
	"callcenter/internal/pkg/errs"
)

var (
	ErrCallSessionIsNotConstructed = errors.New("CallSession must be created via NewCallSession or RestoreCallSession")
	ErrStateRegression             = errors.New("session state can only move forward")
)

// CallSession is one guided call: identify a member, then record one order.
//
// Invariants:
//   - AskMember ⇒ no member; AskOrder, Completed ⇒ member set
//   - the member, once set, is never cleared
//   - state only moves AskMember → AskOrder → Completed
//   - lastError holds the most recent persisted domain rejection only
type CallSession struct {
	id        kernel.UUID
	state     State
	member    *member.Member
	lastError *Failure
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewCallSession starts a session in AskMember.
func NewCallSession(id kernel.UUID, now time.Time) (*CallSession, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &CallSession{
		id:            id,
		state:         AskMember,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreCallSession rebuilds a session loaded from storage and validates its
// fields. The member invariant is left to the state machine, which reports
// a breach as NO_MEMBER.
func RestoreCallSession(
	id kernel.UUID,
	state State,
	m *member.Member,
	lastError *Failure,
	createdAt, updatedAt time.Time,
) (*CallSession, error) {
	var memberErr error
	if m != nil {
		memberErr = m.Validate()
	}

	if err := errors.Join(
		id.Validate(),
		state.Validate(),
		memberErr,
	); err != nil {
		return nil, err
	}

	if lastError != nil && !lastError.Code.IsPersisted() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"last error",
			fmt.Errorf("%s is never persisted", lastError.Code),
		)
	}

	return &CallSession{
		id:            id,
		state:         state,
		member:        m,
		lastError:     lastError,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the session was built by a constructor.
func (s *CallSession) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrCallSessionIsNotConstructed
	}
	return nil
}

// ID returns the session identifier.
func (s *CallSession) ID() kernel.UUID {
	return s.id
}

// State returns the current workflow state.
func (s *CallSession) State() State {
	return s.state
}

// Member returns the identified member, or nil before a successful lookup.
func (s *CallSession) Member() *member.Member {
	return s.member
}

// LastError returns the most recent persisted domain rejection, if any.
func (s *CallSession) LastError() *Failure {
	return s.lastError
}

// CreatedAt returns the creation time.
func (s *CallSession) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the time of the last applied mutation.
func (s *CallSession) UpdatedAt() time.Time {
	return s.updatedAt
}

// Apply performs the mutation carried by d. It returns an error, and leaves
// the session untouched, when d would regress the state or break the
// member invariant.
func (s *CallSession) Apply(d Decision, now time.Time) error {
	switch d.Mutation {
	case MutationNone:
		return nil

	case MutationRecordFailure:
		if d.Failure == nil || !d.Failure.Code.IsPersisted() {
			return errs.NewValueIsInvalidError("decision failure")
		}
		f := *d.Failure
		s.lastError = &f
		s.updatedAt = now
		return nil

	case MutationAdvance:
		return s.advance(d, now)

	default:
		return errs.NewValueIsInvalidErrorWithCause("mutation", fmt.Errorf("%d is not a valid mutation", d.Mutation))
	}
}

func (s *CallSession) advance(d Decision, now time.Time) error {
	if !s.state.canAdvanceTo(d.Next) {
		return fmt.Errorf("%w: %s -> %s", ErrStateRegression, s.state, d.Next)
	}

	m := s.member
	if d.Member != nil {
		if s.member != nil {
			return errs.NewValueIsInvalidErrorWithCause("member", errors.New("member is already set"))
		}
		m = d.Member
	}

	if err := d.Next.ValidateCanHaveMember(m != nil); err != nil {
		return err
	}

	s.member = m
	s.state = d.Next
	s.lastError = nil
	s.updatedAt = now
	return nil
}
