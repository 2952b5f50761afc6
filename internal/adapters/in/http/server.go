package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"callcenter/internal/core/application/usecases/commands"
	"callcenter/internal/core/application/usecases/queries"
	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/generated/servers"
	"callcenter/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type CreateSessionHandler interface {
	Handle(ctx context.Context, cmd commands.CreateSessionCommand) (*session.CallSession, error)
}

type GetSessionHandler interface {
	Handle(ctx context.Context, query queries.GetSessionQuery) (queries.GetSessionQueryResponse, error)
}

type LookupMemberHandler interface {
	Handle(ctx context.Context, cmd commands.LookupMemberCommand) (commands.Outcome, error)
}

type SubmitOrderHandler interface {
	Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (commands.Outcome, error)
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements servers.ServerInterface on top of the intake use cases.
// Refused events are answered with the failure envelope; only unknown
// sessions and infrastructure faults leave it.
type Server struct {
	createSessionHandler CreateSessionHandler
	getSessionHandler    GetSessionHandler
	lookupMemberHandler  LookupMemberHandler
	submitOrderHandler   SubmitOrderHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createSessionHandler CreateSessionHandler,
	getSessionHandler GetSessionHandler,
	lookupMemberHandler LookupMemberHandler,
	submitOrderHandler SubmitOrderHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createSessionHandler: createSessionHandler,
		getSessionHandler:    getSessionHandler,
		lookupMemberHandler:  lookupMemberHandler,
		submitOrderHandler:   submitOrderHandler,
		logger:               logger.With("component", "http_server"),
	}
}

// CreateSession handles POST /api/sessions.
func (s *Server) CreateSession(ctx echo.Context) error {
	cmd, err := commands.NewCreateSessionCommand(kernel.NewUUID())
	if err != nil {
		return s.internalError(ctx, err)
	}

	created, err := s.createSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.internalError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreateSessionResponse{
		Ok:        true,
		SessionId: created.ID().String(),
		State:     created.State().String(),
		Prompt:    session.PromptFor(created.State()),
	})
}

// GetSession handles GET /api/sessions/{sessionId}.
func (s *Server) GetSession(ctx echo.Context, sessionId servers.SessionId) error {
	id, err := kernel.UUIDFromString(sessionId)
	if err != nil {
		return notFound(ctx)
	}

	view, err := s.readSession(ctx.Request().Context(), id)
	if err != nil {
		return s.handleError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSessionResponse(view))
}

// LookupMember handles POST /api/sessions/{sessionId}/member-lookup.
func (s *Server) LookupMember(ctx echo.Context, sessionId servers.SessionId) error {
	id, err := kernel.UUIDFromString(sessionId)
	if err != nil {
		return notFound(ctx)
	}

	var body servers.LookupMemberJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return s.validationFailure(ctx, id, bindFailure(err))
	}

	cmd, err := commands.NewLookupMemberCommand(id, body.MemberNumber)
	if err != nil {
		return s.validationFailure(ctx, id, commands.ValidationFailure(err))
	}

	outcome, err := s.lookupMemberHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.handleError(ctx, err)
	}

	if !outcome.Succeeded() {
		return failure(ctx, outcome.Session.State(), *outcome.Failure)
	}

	m := outcome.Session.Member()
	return ctx.JSON(http.StatusOK, servers.LookupMemberResponse{
		Ok:     true,
		State:  outcome.Session.State().String(),
		Member: servers.Member{MemberNumber: m.Number().String(), Name: m.Name()},
		Prompt: session.MemberConfirmedPrompt(m.Name()),
	})
}

// SubmitOrder handles POST /api/sessions/{sessionId}/order.
func (s *Server) SubmitOrder(ctx echo.Context, sessionId servers.SessionId) error {
	id, err := kernel.UUIDFromString(sessionId)
	if err != nil {
		return notFound(ctx)
	}

	var body servers.SubmitOrderJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return s.validationFailure(ctx, id, bindFailure(err))
	}

	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	cmd, err := commands.NewSubmitOrderCommand(id, body.OrderNumber, quantity)
	if err != nil {
		return s.validationFailure(ctx, id, commands.ValidationFailure(err))
	}

	outcome, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.handleError(ctx, err)
	}

	if !outcome.Succeeded() {
		return failure(ctx, outcome.Session.State(), *outcome.Failure)
	}

	return ctx.JSON(http.StatusOK, servers.SubmitOrderResponse{
		Ok:    true,
		State: outcome.Session.State().String(),
		Order: servers.OrderSummary{
			OrderNumber: outcome.Order.OrderNumber().String(),
			Quantity:    outcome.Order.Quantity(),
		},
		ThankYouMessage: session.ThankYouMessage,
	})
}

func (s *Server) readSession(ctx context.Context, id kernel.UUID) (queries.GetSessionQueryResponse, error) {
	query, err := queries.NewGetSessionQuery(id)
	if err != nil {
		return queries.GetSessionQueryResponse{}, err
	}
	return s.getSessionHandler.Handle(ctx, query)
}

// validationFailure reports malformed input against the session's current
// state, which is read but never changed.
func (s *Server) validationFailure(ctx echo.Context, id kernel.UUID, f session.Failure) error {
	view, err := s.readSession(ctx.Request().Context(), id)
	if err != nil {
		return s.handleError(ctx, err)
	}
	return failure(ctx, view.State, f)
}

func (s *Server) handleError(ctx echo.Context, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return notFound(ctx)
	}
	return s.internalError(ctx, err)
}

func (s *Server) internalError(ctx echo.Context, err error) error {
	req := ctx.Request()
	s.logger.ErrorContext(req.Context(), "request failed",
		"method", req.Method,
		"path", ctx.Path(),
		"error", err,
	)
	return ctx.JSON(http.StatusInternalServerError, servers.DetailResponse{Detail: "internal server error"})
}
