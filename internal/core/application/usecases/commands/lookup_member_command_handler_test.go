package commands_test

import (
	"context"
	"errors"
	"testing"

	"callcenter/internal/core/application/usecases/commands"
	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/core/ports"
	"callcenter/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMemberDirectory struct{ mock.Mock }

func (m *MockMemberDirectory) FindActive(ctx context.Context, number kernel.DigitCode) (*member.Member, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(*member.Member), args.Error(1)
}

func TestLookupMemberCommandHandler_Handle_MemberFound(t *testing.T) {
	// Arrange
	ctx := t.Context()
	s := mustSession(t, session.AskMember, nil)
	found := mustMember(t, "12345678", "Taro Yamada", true)

	cmd, err := commands.NewLookupMemberCommand(s.ID(), "12345678")
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	directory := new(MockMemberDirectory)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, s.ID()).Return(s, nil).Once(),
		directory.On("FindActive", ctx, cmd.MemberNumber()).Return(found, nil).Once(),
		repo.On("Update", ctx, s, session.AskMember).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewLookupMemberCommandHandler(factory, directory)

	// Act
	outcome, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, session.AskOrder, outcome.Session.State())
	assert.Equal(t, "Taro Yamada", outcome.Session.Member().Name())
	assert.Nil(t, outcome.Session.LastError())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	directory.AssertExpectations(t)
}

func TestLookupMemberCommandHandler_Handle_MemberNotFoundIsPersisted(t *testing.T) {
	ctx := t.Context()
	s := mustSession(t, session.AskMember, nil)

	cmd, err := commands.NewLookupMemberCommand(s.ID(), "99999999")
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	directory := new(MockMemberDirectory)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, s.ID()).Return(s, nil).Once(),
		directory.On("FindActive", ctx, cmd.MemberNumber()).
			Return((*member.Member)(nil), errs.NewObjectNotFoundError("member", "99999999")).Once(),
		repo.On("RecordFailure", ctx, s, session.AskMember).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewLookupMemberCommandHandler(factory, directory)
	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, outcome.Failure)
	assert.Equal(t, session.CodeMemberNotFound, outcome.Failure.Code)
	assert.Equal(t, session.AskMember, outcome.Session.State())
	assert.Nil(t, outcome.Session.Member())
	require.NotNil(t, outcome.Session.LastError())
	assert.Equal(t, session.CodeMemberNotFound, outcome.Session.LastError().Code)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestLookupMemberCommandHandler_Handle_WrongStateSkipsDirectory(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		code  session.ErrorCode
	}{
		{"ask order", session.AskOrder, session.CodeInvalidState},
		{"completed", session.Completed, session.CodeAlreadyCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			s := mustSession(t, tt.state, mustMember(t, "12345678", "Taro Yamada", true))

			cmd, err := commands.NewLookupMemberCommand(s.ID(), "87654321")
			require.NoError(t, err)

			repo := new(MockSessionRepository)
			uow := new(MockSessionUoW)
			directory := new(MockMemberDirectory)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("SessionRepository").Return(repo).Once(),
				repo.On("Get", ctx, s.ID()).Return(s, nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)
			factory := new(MockSessionUoWFactory)
			factory.On("Create").Return(uow).Once()

			handler := commands.NewLookupMemberCommandHandler(factory, directory)
			outcome, err := handler.Handle(ctx, cmd)

			require.NoError(t, err)
			require.NotNil(t, outcome.Failure)
			assert.Equal(t, tt.code, outcome.Failure.Code)
			assert.Equal(t, tt.state, outcome.Session.State())
			assert.Equal(t, "12345678", outcome.Session.Member().Number().String())
			assert.Nil(t, outcome.Session.LastError())
			directory.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "RecordFailure", mock.Anything, mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
			uow.AssertExpectations(t)
		})
	}
}

func TestLookupMemberCommandHandler_Handle_UnknownSession(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewLookupMemberCommand(id, "12345678")
	require.NoError(t, err)

	notFound := errs.NewObjectNotFoundError("session", id.String())
	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return((*session.CallSession)(nil), notFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewLookupMemberCommandHandler(factory, new(MockMemberDirectory))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestLookupMemberCommandHandler_Handle_DirectoryFault(t *testing.T) {
	ctx := t.Context()
	s := mustSession(t, session.AskMember, nil)
	cmd, err := commands.NewLookupMemberCommand(s.ID(), "12345678")
	require.NoError(t, err)

	expected := errors.New("connection refused")
	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	directory := new(MockMemberDirectory)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, s.ID()).Return(s, nil).Once(),
		directory.On("FindActive", ctx, cmd.MemberNumber()).Return((*member.Member)(nil), expected).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewLookupMemberCommandHandler(factory, directory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, expected)
	assert.Equal(t, session.AskMember, s.State())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "RecordFailure", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestLookupMemberCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	s := mustSession(t, session.AskMember, nil)
	cmd, err := commands.NewLookupMemberCommand(s.ID(), "12345678")
	require.NoError(t, err)

	expected := errors.New("update failed")
	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	directory := new(MockMemberDirectory)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Get", ctx, s.ID()).Return(s, nil).Once(),
		directory.On("FindActive", ctx, cmd.MemberNumber()).
			Return(mustMember(t, "12345678", "Taro Yamada", true), nil).Once(),
		repo.On("Update", ctx, s, session.AskMember).Return(expected).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewLookupMemberCommandHandler(factory, directory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, expected)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestLookupMemberCommandHandler_Handle_SessionCompletedDuringLookup(t *testing.T) {
	tests := []struct {
		name     string
		found    *member.Member
		findErr  error
		write    string
		freshAt  session.State
		expected session.ErrorCode
	}{
		{
			name:     "not found after completion",
			found:    nil,
			findErr:  errs.NewObjectNotFoundError("member", "12345678"),
			write:    "RecordFailure",
			freshAt:  session.Completed,
			expected: session.CodeAlreadyCompleted,
		},
		{
			name:     "found after completion",
			found:    mustMember(t, "12345678", "Taro Yamada", true),
			write:    "Update",
			freshAt:  session.Completed,
			expected: session.CodeAlreadyCompleted,
		},
		{
			name:     "found after another lookup advanced",
			found:    mustMember(t, "12345678", "Taro Yamada", true),
			write:    "Update",
			freshAt:  session.AskOrder,
			expected: session.CodeInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			stale := mustSession(t, session.AskMember, nil)
			fresh, err := session.RestoreCallSession(
				stale.ID(), tt.freshAt, mustMember(t, "87654321", "Hanako Sato", true), nil,
				stale.CreatedAt(), stale.UpdatedAt(),
			)
			require.NoError(t, err)

			cmd, err := commands.NewLookupMemberCommand(stale.ID(), "12345678")
			require.NoError(t, err)

			repo := new(MockSessionRepository)
			uow := new(MockSessionUoW)
			directory := new(MockMemberDirectory)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("SessionRepository").Return(repo).Once(),
				repo.On("Get", ctx, stale.ID()).Return(stale, nil).Once(),
				directory.On("FindActive", ctx, cmd.MemberNumber()).Return(tt.found, tt.findErr).Once(),
				repo.On(tt.write, ctx, stale, session.AskMember).Return(ports.ErrSessionStateChanged).Once(),
				repo.On("Get", ctx, stale.ID()).Return(fresh, nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)
			factory := new(MockSessionUoWFactory)
			factory.On("Create").Return(uow).Once()

			handler := commands.NewLookupMemberCommandHandler(factory, directory)
			outcome, err := handler.Handle(ctx, cmd)

			require.NoError(t, err)
			require.NotNil(t, outcome.Failure)
			assert.Equal(t, tt.expected, outcome.Failure.Code)
			assert.Same(t, fresh, outcome.Session)
			assert.Equal(t, tt.freshAt, outcome.Session.State())
			assert.Equal(t, "87654321", outcome.Session.Member().Number().String())
			uow.AssertNotCalled(t, "Commit", mock.Anything)
			repo.AssertExpectations(t)
			uow.AssertExpectations(t)
		})
	}
}

func TestLookupMemberCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockSessionUoWFactory)
	handler := commands.NewLookupMemberCommandHandler(factory, new(MockMemberDirectory))

	_, err := handler.Handle(t.Context(), commands.LookupMemberCommand{})

	require.ErrorIs(t, err, commands.ErrLookupMemberCommandIsNotConstructed)
	factory.AssertExpectations(t)
}
