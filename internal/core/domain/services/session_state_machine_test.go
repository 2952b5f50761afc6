package services_test

import (
	"testing"
	"time"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func code(t *testing.T, raw string) kernel.DigitCode {
	t.Helper()
	c, err := kernel.NewDigitCode("code", raw)
	require.NoError(t, err)
	return c
}

func activeMember(t *testing.T, active bool) *member.Member {
	t.Helper()
	m, err := member.RestoreMember(code(t, "12345678"), "Taro Yamada", active)
	require.NoError(t, err)
	return m
}

func sessionIn(t *testing.T, state session.State, m *member.Member) *session.CallSession {
	t.Helper()
	s, err := session.RestoreCallSession(kernel.NewUUID(), state, m, nil, now, now)
	require.NoError(t, err)
	return s
}

func TestSessionStateMachine_DecideLookup(t *testing.T) {
	machine := services.NewSessionStateMachine()

	t.Run("active member advances to ASK_ORDER", func(t *testing.T) {
		m := activeMember(t, true)

		d := machine.DecideLookup(sessionIn(t, session.AskMember, nil), m)

		assert.True(t, d.Admitted())
		assert.Equal(t, session.MutationAdvance, d.Mutation)
		assert.Equal(t, session.AskOrder, d.Next)
		assert.Same(t, m, d.Member)
	})

	t.Run("unknown member records MEMBER_NOT_FOUND", func(t *testing.T) {
		d := machine.DecideLookup(sessionIn(t, session.AskMember, nil), nil)

		require.False(t, d.Admitted())
		assert.Equal(t, session.CodeMemberNotFound, d.Failure.Code)
		assert.Equal(t, session.MutationRecordFailure, d.Mutation)
		assert.Equal(t, session.AskMember, d.Next)
	})

	t.Run("inactive member records MEMBER_NOT_FOUND", func(t *testing.T) {
		d := machine.DecideLookup(sessionIn(t, session.AskMember, nil), activeMember(t, false))

		require.False(t, d.Admitted())
		assert.Equal(t, session.CodeMemberNotFound, d.Failure.Code)
	})

	t.Run("ASK_ORDER rejects with INVALID_STATE", func(t *testing.T) {
		d := machine.DecideLookup(sessionIn(t, session.AskOrder, activeMember(t, true)), activeMember(t, true))

		require.False(t, d.Admitted())
		assert.Equal(t, session.CodeInvalidState, d.Failure.Code)
		assert.Equal(t, session.MutationNone, d.Mutation)
	})

	t.Run("COMPLETED rejects with ALREADY_COMPLETED", func(t *testing.T) {
		d := machine.DecideLookup(sessionIn(t, session.Completed, activeMember(t, true)), nil)

		require.False(t, d.Admitted())
		assert.Equal(t, session.CodeAlreadyCompleted, d.Failure.Code)
		assert.Equal(t, session.MutationNone, d.Mutation)
	})
}

func TestSessionStateMachine_DecideOrder(t *testing.T) {
	machine := services.NewSessionStateMachine()

	testCases := []struct {
		name     string
		state    session.State
		member   bool
		number   string
		code     session.ErrorCode
		mutation session.Mutation
	}{
		{"valid order completes", session.AskOrder, true, "10020030", "", session.MutationAdvance},
		{"leading zero is INVALID_ORDER", session.AskOrder, true, "01234567", session.CodeInvalidOrder, session.MutationRecordFailure},
		{"missing member is NO_MEMBER", session.AskOrder, false, "10020030", session.CodeNoMember, session.MutationNone},
		{"ASK_MEMBER is INVALID_STATE", session.AskMember, false, "10020030", session.CodeInvalidState, session.MutationNone},
		{"COMPLETED is ALREADY_COMPLETED", session.Completed, true, "10020030", session.CodeAlreadyCompleted, session.MutationNone},
		{"COMPLETED wins over leading zero", session.Completed, true, "01234567", session.CodeAlreadyCompleted, session.MutationNone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var m *member.Member
			if tc.member {
				m = activeMember(t, true)
			}

			d := machine.DecideOrder(sessionIn(t, tc.state, m), code(t, tc.number))

			assert.Equal(t, tc.mutation, d.Mutation)
			if tc.code == "" {
				assert.True(t, d.Admitted())
				assert.Equal(t, session.Completed, d.Next)
				return
			}
			require.False(t, d.Admitted())
			assert.Equal(t, tc.code, d.Failure.Code)
			assert.Equal(t, tc.state, d.Next)
		})
	}
}

// Every sequence of events keeps the state monotonic.
func TestSessionStateMachine_ForwardOnly(t *testing.T) {
	machine := services.NewSessionStateMachine()
	m := activeMember(t, true)
	s, err := session.NewCallSession(kernel.NewUUID(), now)
	require.NoError(t, err)

	events := []func() session.Decision{
		func() session.Decision { return machine.DecideOrder(s, code(t, "10020030")) },
		func() session.Decision { return machine.DecideLookup(s, nil) },
		func() session.Decision { return machine.DecideLookup(s, m) },
		func() session.Decision { return machine.DecideLookup(s, m) },
		func() session.Decision { return machine.DecideOrder(s, code(t, "01234567")) },
		func() session.Decision { return machine.DecideOrder(s, code(t, "10020030")) },
		func() session.Decision { return machine.DecideOrder(s, code(t, "10020030")) },
		func() session.Decision { return machine.DecideLookup(s, m) },
	}

	previous := s.State()
	for i, event := range events {
		require.NoError(t, s.Apply(event(), now), "event %d", i)
		assert.GreaterOrEqual(t, int(s.State()), int(previous), "event %d regressed", i)
		require.NoError(t, s.State().ValidateCanHaveMember(s.Member() != nil))
		previous = s.State()
	}

	assert.Equal(t, session.Completed, s.State())
}
