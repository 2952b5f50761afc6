package queries

import (
	"context"

	"callcenter/internal/core/domain/model/session"

	"gorm.io/gorm"
)

// AuditSessionsQueryHandler computes the audit counters with two aggregate
// queries.
type AuditSessionsQueryHandler struct {
	db *gorm.DB
}

// NewAuditSessionsQueryHandler creates a handler for the session audit.
func NewAuditSessionsQueryHandler(db *gorm.DB) AuditSessionsQueryHandler {
	return AuditSessionsQueryHandler{db: db}
}

// Handle runs the audit. Rows with an unrecognized state are counted
// under session.Unknown.
func (h AuditSessionsQueryHandler) Handle(
	ctx context.Context,
	query AuditSessionsQuery,
) (AuditSessionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AuditSessionsQueryResponse{}, err
	}

	resp := AuditSessionsQueryResponse{
		SessionsByState: make(map[session.State]int64),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT state, COUNT(*)
		FROM call_sessions
		GROUP BY state
	`).Rows()
	if err != nil {
		return AuditSessionsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			count int64
		)
		if err = rows.Scan(&name, &count); err != nil {
			return AuditSessionsQueryResponse{}, err
		}

		state, parseErr := session.ParseState(name)
		if parseErr != nil {
			state = session.Unknown
		}
		resp.SessionsByState[state] += count
	}

	if err = rows.Err(); err != nil {
		return AuditSessionsQueryResponse{}, err
	}

	completed := session.Completed.String()
	askMember := session.AskMember.String()

	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE s.state = ? AND o.id IS NULL),
			COUNT(*) FILTER (WHERE s.state <> ? AND o.id IS NOT NULL),
			COUNT(*) FILTER (WHERE s.state <> ? AND s.member_number IS NULL),
			COUNT(*) FILTER (WHERE s.state = ? AND s.member_number IS NOT NULL)
		FROM call_sessions s
		LEFT JOIN orders o ON o.session_id = s.id
	`, completed, completed, askMember, askMember).Row().Scan(
		&resp.CompletedWithoutOrder,
		&resp.OrdersOnOpenSessions,
		&resp.MissingMember,
		&resp.UnexpectedMember,
	)
	if err != nil {
		return AuditSessionsQueryResponse{}, err
	}

	return resp, nil
}
