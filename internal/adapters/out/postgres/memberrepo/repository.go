package memberrepo

import (
	"context"
	"errors"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
	"callcenter/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMemberDirectory implements ports.MemberDirectory over the members table.
type GormMemberDirectory struct {
	db *gorm.DB
}

// NewGormMemberDirectory creates a member directory using db.
func NewGormMemberDirectory(db *gorm.DB) *GormMemberDirectory {
	return &GormMemberDirectory{db: db}
}

// FindActive returns the active member with the given number. Unknown and
// inactive members are both reported as *errs.ObjectNotFoundError.
func (d *GormMemberDirectory) FindActive(ctx context.Context, number kernel.DigitCode) (*member.Member, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto MemberDTO
	err := d.db.WithContext(ctx).
		First(&dto, "number = ? AND active = ?", number.String(), true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("member", number.String())
	}
	if err != nil {
		return nil, err
	}

	return ToDomain(dto)
}

// Seed inserts the given members, overwriting name and active flag of
// members that already exist. It is idempotent.
func (d *GormMemberDirectory) Seed(ctx context.Context, members ...*member.Member) error {
	if len(members) == 0 {
		return nil
	}

	dtos := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		if err := m.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, FromDomain(m))
	}

	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "number"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "active"}),
		}).
		Create(&dtos).Error
}
