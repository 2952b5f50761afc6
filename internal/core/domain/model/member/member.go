// Package member holds the read-only member record the intake workflow
// identifies callers against. This service never creates or edits members;
// they are restored from the member directory.
package member

import (
	"errors"
	"strings"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/pkg/errs"
)

// ErrMemberIsNotConstructed is returned when a Member bypassed RestoreMember.
var ErrMemberIsNotConstructed = errors.New("Member must be created via RestoreMember")

// Member is a cooperative member identified by an 8-digit number.
type Member struct {
	number kernel.DigitCode
	name   string
	active bool

	isConstructed bool
}

// RestoreMember rebuilds a Member loaded from the directory.
func RestoreMember(number kernel.DigitCode, name string, active bool) (*Member, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("member name")
	}

	return &Member{
		number:        number,
		name:          name,
		active:        active,
		isConstructed: true,
	}, nil
}

// Validate ensures the member was restored through RestoreMember.
func (m *Member) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMemberIsNotConstructed
	}
	return nil
}

// Number returns the member number.
func (m *Member) Number() kernel.DigitCode {
	return m.number
}

// Name returns the display name read back to the caller.
func (m *Member) Name() string {
	return m.name
}

// IsActive reports whether the member may place orders.
func (m *Member) IsActive() bool {
	return m.active
}
