package commands

import (
	"context"
	"time"

	"callcenter/internal/core/domain/model/session"
)

// CreateSessionCommandHandler persists new call sessions.
type CreateSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewCreateSessionCommandHandler creates a handler for session creation.
func NewCreateSessionCommandHandler(uowFactory SessionUoWFactory) CreateSessionCommandHandler {
	return CreateSessionCommandHandler{uowFactory: uowFactory}
}

// Handle creates the session in ASK_MEMBER and returns it.
func (h CreateSessionCommandHandler) Handle(ctx context.Context, cmd CreateSessionCommand) (*session.CallSession, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := session.NewCallSession(cmd.SessionID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SessionRepository().Add(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
