package session_test

import (
	"testing"

	"callcenter/internal/core/domain/model/session"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_Category(t *testing.T) {
	assert.Equal(t, session.CategoryValidation, session.CodeValidationError.Category())
	assert.Equal(t, session.CategoryRejected, session.CodeMemberNotFound.Category())
	assert.Equal(t, session.CategoryRejected, session.CodeInvalidOrder.Category())

	for _, code := range []session.ErrorCode{
		session.CodeDuplicateOrder,
		session.CodeAlreadyCompleted,
		session.CodeInvalidState,
		session.CodeNoMember,
	} {
		assert.Equal(t, session.CategoryConflict, code.Category(), code)
		assert.False(t, code.IsPersisted(), code)
	}
}

func TestErrorCode_IsPersisted(t *testing.T) {
	assert.False(t, session.CodeValidationError.IsPersisted())
	assert.True(t, session.CodeMemberNotFound.IsPersisted())
	assert.True(t, session.CodeInvalidOrder.IsPersisted())
}

func TestNewFailure(t *testing.T) {
	f := session.NewFailure(session.CodeAlreadyCompleted)
	assert.Equal(t, session.CodeAlreadyCompleted, f.Code)
	assert.NotEmpty(t, f.Message)

	v := session.NewValidationFailure("member number must be 8 digits")
	assert.Equal(t, session.CodeValidationError, v.Code)
	assert.Equal(t, "VALIDATION_ERROR: member number must be 8 digits", v.String())
}

func TestPromptFor(t *testing.T) {
	assert.Equal(t, session.PromptAskMember, session.PromptFor(session.AskMember))
	assert.Equal(t, session.PromptAskOrder, session.PromptFor(session.AskOrder))
	assert.Empty(t, session.PromptFor(session.Completed))
	assert.Contains(t, session.MemberConfirmedPrompt("Hanako Sato"), "Hanako Sato")
}
