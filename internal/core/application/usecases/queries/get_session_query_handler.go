package queries

import (
	"context"
	"database/sql"
	"errors"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSessionQueryHandler reads a session together with its member and order.
type GetSessionQueryHandler struct {
	db *gorm.DB
}

// NewGetSessionQueryHandler creates a handler for session reads.
func NewGetSessionQueryHandler(db *gorm.DB) GetSessionQueryHandler {
	return GetSessionQueryHandler{db: db}
}

// Handle returns the session view. Unknown ids are reported as
// *errs.ObjectNotFoundError.
func (h GetSessionQueryHandler) Handle(ctx context.Context, query GetSessionQuery) (GetSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionQueryResponse{}, err
	}

	var (
		resp         GetSessionQueryResponse
		state        string
		memberNumber sql.NullString
		memberName   sql.NullString
		errorCode    sql.NullString
		errorMessage sql.NullString
		orderID      uuid.NullUUID
		orderNumber  sql.NullString
		quantity     sql.NullInt64
		orderedAt    sql.NullTime
	)

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.state,
			s.member_number,
			m.name,
			s.last_error_code,
			s.last_error_message,
			s.created_at,
			s.updated_at,
			o.id,
			o.order_number,
			o.quantity,
			o.created_at
		FROM call_sessions s
		LEFT JOIN members m ON m.number = s.member_number
		LEFT JOIN orders o ON o.session_id = s.id
		WHERE s.id = ?
	`, query.SessionID().Bytes()).Row().Scan(
		&state,
		&memberNumber,
		&memberName,
		&errorCode,
		&errorMessage,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&orderID,
		&orderNumber,
		&quantity,
		&orderedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetSessionQueryResponse{}, errs.NewObjectNotFoundError("session", query.SessionID().String())
	}
	if err != nil {
		return GetSessionQueryResponse{}, err
	}

	resp.ID = query.SessionID()
	if resp.State, err = session.ParseState(state); err != nil {
		return GetSessionQueryResponse{}, err
	}

	if memberNumber.Valid {
		resp.Member = &MemberView{Number: memberNumber.String, Name: memberName.String}
	}

	if errorCode.Valid {
		resp.LastError = &session.Failure{
			Code:    session.ErrorCode(errorCode.String),
			Message: errorMessage.String,
		}
	}

	if orderID.Valid {
		id, idErr := kernel.UUIDFromBytes(orderID.UUID[:])
		if idErr != nil {
			return GetSessionQueryResponse{}, idErr
		}
		resp.Order = &OrderView{
			ID:          id,
			OrderNumber: orderNumber.String,
			Quantity:    int(quantity.Int64),
			CreatedAt:   orderedAt.Time,
		}
	}

	return resp, nil
}
