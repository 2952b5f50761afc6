package queries

import (
	"errors"

	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/pkg/guard"
)

var ErrAuditSessionsQueryIsNotConstructed = errors.New(
	"AuditSessionsQuery must be created via NewAuditSessionsQuery constructor",
)

// AuditSessionsQuery summarizes the session store and counts records that
// break the intake invariants. It is run periodically by the audit job.
type AuditSessionsQuery struct {
	guard guard.ConstructorGuard
}

// NewAuditSessionsQuery creates the audit query.
func NewAuditSessionsQuery() AuditSessionsQuery {
	return AuditSessionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q AuditSessionsQuery) Validate() error {
	return q.guard.Validate(ErrAuditSessionsQueryIsNotConstructed)
}

// AuditSessionsQueryResponse holds the audit counters.
type AuditSessionsQueryResponse struct {
	SessionsByState map[session.State]int64

	// CompletedWithoutOrder counts COMPLETED sessions with no order.
	CompletedWithoutOrder int64
	// OrdersOnOpenSessions counts orders whose session is not COMPLETED.
	OrdersOnOpenSessions int64
	// MissingMember counts ASK_ORDER and COMPLETED sessions without a member.
	MissingMember int64
	// UnexpectedMember counts ASK_MEMBER sessions that carry a member.
	UnexpectedMember int64
}

// Breaches returns the total number of invariant violations found.
func (r AuditSessionsQueryResponse) Breaches() int64 {
	return r.CompletedWithoutOrder + r.OrdersOnOpenSessions + r.MissingMember + r.UnexpectedMember
}
