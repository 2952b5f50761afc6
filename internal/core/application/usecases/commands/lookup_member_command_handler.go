package commands

import (
	"context"
	"errors"
	"time"

	"callcenter/internal/core/domain/model/member"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/core/domain/services"
	"callcenter/internal/core/ports"
	"callcenter/internal/pkg/errs"
)

// LookupMemberCommandHandler runs the member-lookup event.
//
// The session is read without a lock so a slow directory never holds a row
// lock. The write is a compare-and-set on the state that was read: if a
// concurrent request moved the session on meanwhile, nothing is written and
// the lookup is rejected against the fresh state. The first lookup to
// advance a session wins.
type LookupMemberCommandHandler struct {
	uowFactory SessionUoWFactory
	directory  ports.MemberDirectory
	machine    services.SessionStateMachine
}

// NewLookupMemberCommandHandler creates a handler for member lookups.
func NewLookupMemberCommandHandler(
	uowFactory SessionUoWFactory,
	directory ports.MemberDirectory,
) LookupMemberCommandHandler {
	return LookupMemberCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		machine:    services.NewSessionStateMachine(),
	}
}

// Handle looks up the member and applies the resulting decision.
// An unknown session is returned as *errs.ObjectNotFoundError.
func (h LookupMemberCommandHandler) Handle(ctx context.Context, cmd LookupMemberCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return Outcome{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Outcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	s, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return Outcome{}, err
	}

	var found *member.Member
	if s.State() == session.AskMember {
		found, err = h.directory.FindActive(ctx, cmd.MemberNumber())
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return Outcome{}, err
		}
	}

	decision := h.machine.DecideLookup(s, found)
	if decision.Mutation == session.MutationNone {
		return Outcome{Session: s, Failure: decision.Failure}, nil
	}

	from := s.State()
	if err = s.Apply(decision, time.Now().UTC()); err != nil {
		return Outcome{}, err
	}

	if decision.Mutation == session.MutationRecordFailure {
		err = sessionRepo.RecordFailure(ctx, s, from)
	} else {
		err = sessionRepo.Update(ctx, s, from)
	}
	if errors.Is(err, ports.ErrSessionStateChanged) {
		return h.rejectStale(ctx, sessionRepo, cmd)
	}
	if err != nil {
		return Outcome{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Outcome{}, err
	}

	return Outcome{Session: s, Failure: decision.Failure}, nil
}

// rejectStale re-reads a session that moved on during the lookup. States
// only move forward, so the fresh state always rejects the lookup.
func (h LookupMemberCommandHandler) rejectStale(
	ctx context.Context,
	sessionRepo ports.SessionRepository,
	cmd LookupMemberCommand,
) (Outcome, error) {
	fresh, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return Outcome{}, err
	}

	decision := h.machine.DecideLookup(fresh, nil)
	if decision.Mutation != session.MutationNone {
		return Outcome{}, ports.ErrSessionStateChanged
	}

	return Outcome{Session: fresh, Failure: decision.Failure}, nil
}
