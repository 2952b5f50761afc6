// Package ports defines the contracts between the intake core and its
// infrastructure: the read-only member directory, session and order
// storage, and the unit of work binding them to one transaction.
package ports

import (
	"context"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
)

// MemberDirectory looks up members by number. It is read-only and needs no
// coordination with the rest of the core.
type MemberDirectory interface {
	// FindActive returns the active member with the given number.
	// A missing or inactive member is reported as *errs.ObjectNotFoundError;
	// any other error is an infrastructure fault.
	FindActive(ctx context.Context, number kernel.DigitCode) (*member.Member, error)
}
