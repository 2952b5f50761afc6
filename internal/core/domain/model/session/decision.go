package session

import "callcenter/internal/core/domain/model/member"

// Mutation is the storage effect a Decision asks the caller to apply.
type Mutation int

const (
	// MutationNone leaves the session untouched (conflicts).
	MutationNone Mutation = iota

	// MutationRecordFailure stores the failure as the session's last error
	// without changing its state.
	MutationRecordFailure

	// MutationAdvance moves the session one step forward, clears its last
	// error and, for a lookup, attaches the member.
	MutationAdvance
)

// Decision is the outcome of running one event through the state machine.
// It is a plain value; nothing is persisted until a handler applies it.
type Decision struct {
	Mutation Mutation
	Next     State
	Member   *member.Member
	Failure  *Failure
}

// Reject builds a decision that refuses the event without any mutation.
func Reject(current State, code ErrorCode) Decision {
	f := NewFailure(code)
	return Decision{Mutation: MutationNone, Next: current, Failure: &f}
}

// RecordFailure builds a decision that keeps the state but stores the failure.
func RecordFailure(current State, code ErrorCode) Decision {
	f := NewFailure(code)
	return Decision{Mutation: MutationRecordFailure, Next: current, Failure: &f}
}

// Advance builds a decision that moves the session to next.
func Advance(next State, m *member.Member) Decision {
	return Decision{Mutation: MutationAdvance, Next: next, Member: m}
}

// Admitted reports whether the event succeeded.
func (d Decision) Admitted() bool {
	return d.Failure == nil
}
