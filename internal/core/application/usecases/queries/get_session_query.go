// Package queries contains read-only views over the intake store. Query
// handlers read straight from the database and never mutate a session.
package queries

import (
	"errors"
	"time"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/pkg/guard"
)

var ErrGetSessionQueryIsNotConstructed = errors.New(
	"GetSessionQuery must be created via NewGetSessionQuery constructor",
)

// GetSessionQuery reads the current state of one call session.
//
// Example:
//
//	query, err := NewGetSessionQuery(sessionID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown session
//	}
type GetSessionQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSessionQuery creates a query for the given session.
func NewGetSessionQuery(sessionID kernel.UUID) (GetSessionQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetSessionQuery{}, err
	}

	return GetSessionQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionQueryIsNotConstructed)
}

// SessionID returns the session to read.
func (q GetSessionQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// MemberView is the identified caller as shown to the agent.
type MemberView struct {
	Number string
	Name   string
}

// OrderView is the order committed for a completed session.
type OrderView struct {
	ID          kernel.UUID
	OrderNumber string
	Quantity    int
	CreatedAt   time.Time
}

// GetSessionQueryResponse is the read model of a call session. Member,
// LastError and Order are nil when absent.
type GetSessionQueryResponse struct {
	ID        kernel.UUID
	State     session.State
	Member    *MemberView
	LastError *session.Failure
	Order     *OrderView
	CreatedAt time.Time
	UpdatedAt time.Time
}
