package queries_test

import (
	"testing"

	"callcenter/internal/core/application/usecases/queries"
	"callcenter/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetSessionQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetSessionQuery(id)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.SessionID().IsEqual(id))
}

func TestNewGetSessionQuery_ZeroID(t *testing.T) {
	_, err := queries.NewGetSessionQuery(kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetSessionQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetSessionQuery{}

	assert.ErrorIs(t, query.Validate(), queries.ErrGetSessionQueryIsNotConstructed)
}

func TestNewAuditSessionsQuery_Valid(t *testing.T) {
	require.NoError(t, queries.NewAuditSessionsQuery().Validate())
}

func TestAuditSessionsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.AuditSessionsQuery{}

	assert.ErrorIs(t, query.Validate(), queries.ErrAuditSessionsQueryIsNotConstructed)
}

func TestAuditSessionsQueryResponse_Breaches(t *testing.T) {
	resp := queries.AuditSessionsQueryResponse{
		CompletedWithoutOrder: 1,
		OrdersOnOpenSessions:  2,
		MissingMember:         3,
		UnexpectedMember:      4,
	}

	assert.EqualValues(t, 10, resp.Breaches())
	assert.Zero(t, queries.AuditSessionsQueryResponse{}.Breaches())
}
