package commands

import (
	"context"
	"errors"
	"time"

	"callcenter/internal/core/domain/model/order"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/core/domain/services"
	"callcenter/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SubmitOrderCommandHandler is the order committer: it records at most one
// order per session, however many submissions race for it.
//
// The check-decide-commit sequence runs in one transaction:
//  1. lock the session row and re-read it (a racing request may have
//     completed it since any earlier read)
//  2. re-run the order guards on the fresh state
//  3. insert the order if the session has none; storage uniqueness on the
//     session reference backs up the lock, and a collision is reported
//     as DUPLICATE_ORDER with nothing applied
//  4. advance the session to COMPLETED and commit order and session together
//
// Example:
//
//	committer := NewSubmitOrderCommandHandler(uowFactory)
//	outcome, err := committer.Handle(ctx, cmd)
//	switch {
//	case err != nil:
//	    // storage fault
//	case !outcome.Succeeded():
//	    // outcome.Failure.Code is INVALID_ORDER, ALREADY_COMPLETED, DUPLICATE_ORDER, ...
//	}
type SubmitOrderCommandHandler struct {
	uowFactory UoWFactory
	machine    services.SessionStateMachine
}

// NewSubmitOrderCommandHandler creates the order committer.
func NewSubmitOrderCommandHandler(uowFactory UoWFactory) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		machine:    services.NewSessionStateMachine(),
	}
}

// Handle runs the order-submission event. An unknown session is returned as
// *errs.ObjectNotFoundError.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return Outcome{}, err
	}

	ctx, span := otel.Tracer("callcenter/commands").Start(ctx, "SubmitOrder")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", cmd.SessionID().String()),
		attribute.String("order.number", cmd.OrderNumber().String()),
	)

	outcome, err := h.commit(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Outcome{}, err
	}

	if outcome.Failure != nil {
		span.SetAttributes(attribute.String("outcome.code", string(outcome.Failure.Code)))
	}
	return outcome, nil
}

func (h SubmitOrderCommandHandler) commit(ctx context.Context, cmd SubmitOrderCommand) (Outcome, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Outcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	s, err := sessionRepo.GetForUpdate(ctx, cmd.SessionID())
	if err != nil {
		return Outcome{}, err
	}

	now := time.Now().UTC()
	decision := h.machine.DecideOrder(s, cmd.OrderNumber())

	switch decision.Mutation {
	case session.MutationNone:
		return Outcome{Session: s, Failure: decision.Failure}, nil

	case session.MutationRecordFailure:
		if err = s.Apply(decision, now); err != nil {
			return Outcome{}, err
		}
		if err = sessionRepo.RecordFailure(ctx, s, session.AskOrder); err != nil {
			return Outcome{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return Outcome{}, err
		}
		return Outcome{Session: s, Failure: decision.Failure}, nil
	}

	o, err := order.NewOrder(s.ID(), s.Member().Number(), cmd.OrderNumber(), cmd.Quantity(), now)
	if err != nil {
		return Outcome{}, err
	}

	err = uow.OrderRepository().AddIfAbsent(ctx, o)
	if errors.Is(err, ports.ErrOrderAlreadyExists) {
		failure := session.NewFailure(session.CodeDuplicateOrder)
		return Outcome{Session: s, Failure: &failure}, nil
	}
	if err != nil {
		return Outcome{}, err
	}

	if err = s.Apply(decision, now); err != nil {
		return Outcome{}, err
	}

	if err = sessionRepo.Update(ctx, s, session.AskOrder); err != nil {
		return Outcome{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Outcome{}, err
	}

	return Outcome{Session: s, Order: o}, nil
}
