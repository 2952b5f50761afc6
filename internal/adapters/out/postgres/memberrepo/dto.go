// Package memberrepo provides the PostgreSQL-backed member directory.
// Members are reference data: the intake service reads them and the
// seed-members command writes them.
package memberrepo

import (
	"time"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
)

// MemberDTO represents a row of the members table.
type MemberDTO struct {
	Number    string    `gorm:"type:varchar(8);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Active    bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for members.
func (MemberDTO) TableName() string {
	return "members"
}

// FromDomain converts a member to its database representation.
func FromDomain(m *member.Member) MemberDTO {
	return MemberDTO{
		Number: m.Number().String(),
		Name:   m.Name(),
		Active: m.IsActive(),
	}
}

// ToDomain rebuilds a member from its database representation. It is
// exported for the session repository, which loads the member of a
// session along with it.
func ToDomain(dto MemberDTO) (*member.Member, error) {
	number, err := kernel.NewDigitCode("member number", dto.Number)
	if err != nil {
		return nil, err
	}

	return member.RestoreMember(number, dto.Name, dto.Active)
}
