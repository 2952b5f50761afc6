// Package sessionrepo persists call sessions. A session row references its
// member by number; the member is loaded with the session so the state
// machine sees the full aggregate.
package sessionrepo

import (
	"errors"
	"time"

	"callcenter/internal/adapters/out/postgres/memberrepo"
	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
	"callcenter/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// SessionDTO represents a row of the call_sessions table. State is stored
// by name so the table stays readable in ad-hoc queries.
type SessionDTO struct {
	ID               uuid.UUID             `gorm:"type:uuid;primaryKey"`
	State            string                `gorm:"type:varchar(16);not null;index"`
	MemberNumber     *string               `gorm:"type:varchar(8);index"`
	Member           *memberrepo.MemberDTO `gorm:"foreignKey:MemberNumber;references:Number;constraint:OnDelete:RESTRICT"`
	LastErrorCode    *string               `gorm:"type:varchar(32)"`
	LastErrorMessage *string               `gorm:"type:text"`
	CreatedAt        time.Time             `gorm:"not null;autoCreateTime:false"`
	UpdatedAt        time.Time             `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for call sessions.
func (SessionDTO) TableName() string {
	return "call_sessions"
}

var errDanglingMember = errors.New("session references a member that was not loaded")

// fromDomain maps a session to its row. The member association is left
// empty; only the reference column is written.
func fromDomain(s *session.CallSession) SessionDTO {
	dto := SessionDTO{
		ID:        s.ID().Bytes(),
		State:     s.State().String(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}

	if m := s.Member(); m != nil {
		number := m.Number().String()
		dto.MemberNumber = &number
	}

	if f := s.LastError(); f != nil {
		code := string(f.Code)
		message := f.Message
		dto.LastErrorCode = &code
		dto.LastErrorMessage = &message
	}

	return dto
}

func toDomain(dto SessionDTO) (*session.CallSession, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	state, err := session.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	var m *member.Member
	if dto.MemberNumber != nil {
		if dto.Member == nil {
			return nil, errDanglingMember
		}
		if m, err = memberrepo.ToDomain(*dto.Member); err != nil {
			return nil, err
		}
	}

	var lastError *session.Failure
	if dto.LastErrorCode != nil {
		lastError = &session.Failure{Code: session.ErrorCode(*dto.LastErrorCode)}
		if dto.LastErrorMessage != nil {
			lastError.Message = *dto.LastErrorMessage
		}
	}

	return session.RestoreCallSession(id, state, m, lastError, dto.CreatedAt, dto.UpdatedAt)
}
