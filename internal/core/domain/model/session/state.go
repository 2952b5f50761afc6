package session

import (
	"fmt"

	"callcenter/internal/pkg/errs"
)

// State is the position of a call session in the intake workflow.
//
// State transitions:
//
//	AskMember ──> AskOrder ──> Completed
//
// The workflow only moves forward; Completed is terminal.
type State int

const (
	// Unknown is the zero value and never valid.
	Unknown State = iota

	// AskMember is the initial state: the agent must identify the caller.
	AskMember

	// AskOrder means a member is on record and an order number is expected.
	AskOrder

	// Completed means exactly one order has been recorded for the session.
	Completed
)

var stateNames = map[State]string{
	AskMember: "ASK_MEMBER",
	AskOrder:  "ASK_ORDER",
	Completed: "COMPLETED",
}

// ParseState converts the persisted/wire name back into a State.
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", name))
}

// String returns the wire name, e.g. "ASK_ORDER", or "UNKNOWN".
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values.
func (s State) Validate() error {
	if _, ok := stateNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// IsTerminal reports whether no event may leave this state.
func (s State) IsTerminal() bool {
	return s == Completed
}

// ValidateCanHaveMember enforces the member invariant:
//   - AskMember sessions have no member on record
//   - AskOrder and Completed sessions always have one
func (s State) ValidateCanHaveMember(hasMember bool) error {
	if hasMember && s == AskMember {
		return errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%s is not a valid state to have a member", s),
		)
	}

	if !hasMember && (s == AskOrder || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%s is not a valid state to have no member", s),
		)
	}

	return nil
}

// canAdvanceTo reports whether next is the single forward step from s.
func (s State) canAdvanceTo(next State) bool {
	return (s == AskMember && next == AskOrder) || (s == AskOrder && next == Completed)
}
