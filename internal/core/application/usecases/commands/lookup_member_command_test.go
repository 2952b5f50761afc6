package commands_test

import (
	"testing"

	"callcenter/internal/core/application/usecases/commands"
	"callcenter/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLookupMemberCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewLookupMemberCommand(id, "12345678")

	require.NoError(t, err)
	assert.True(t, cmd.SessionID().IsEqual(id))
	assert.Equal(t, "12345678", cmd.MemberNumber().String())
	assert.NoError(t, cmd.Validate())
}

func TestNewLookupMemberCommand_InvalidMemberNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
	}{
		{"empty", ""},
		{"too short", "1234567"},
		{"too long", "123456789"},
		{"letters", "1234567a"},
		{"full-width digits", "１２３４５６７８"},
		{"surrounding spaces", " 1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewLookupMemberCommand(kernel.NewUUID(), tt.number)

			require.ErrorIs(t, err, commands.ErrMemberNumberIsInvalid)
		})
	}
}

func TestNewLookupMemberCommand_LeadingZeroIsWellFormed(t *testing.T) {
	cmd, err := commands.NewLookupMemberCommand(kernel.NewUUID(), "00000001")

	require.NoError(t, err)
	assert.Equal(t, "00000001", cmd.MemberNumber().String())
}

func TestLookupMemberCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.LookupMemberCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrLookupMemberCommandIsNotConstructed)
}
