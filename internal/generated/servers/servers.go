// Package servers provides primitives to interact with the openapi HTTP API.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Defines values for State.
const (
	ASKMEMBER State = "ASK_MEMBER"
	ASKORDER  State = "ASK_ORDER"
	COMPLETED State = "COMPLETED"
)

// State defines model for State.
type State = string

// ErrorCode defines model for ErrorCode.
type ErrorCode = string

// ErrorDetail defines model for ErrorDetail.
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Member defines model for Member.
type Member struct {
	MemberNumber string `json:"member_number"`
	Name         string `json:"name"`
}

// OrderSummary defines model for OrderSummary.
type OrderSummary struct {
	OrderNumber string `json:"order_number"`
	Quantity    int    `json:"quantity"`
}

// LookupMemberRequest defines model for LookupMemberRequest.
type LookupMemberRequest struct {
	MemberNumber string `json:"member_number"`
}

// SubmitOrderRequest defines model for SubmitOrderRequest.
type SubmitOrderRequest struct {
	OrderNumber string `json:"order_number"`
	Quantity    *int   `json:"quantity,omitempty"`
}

// CreateSessionResponse defines model for CreateSessionResponse.
type CreateSessionResponse struct {
	Ok        bool   `json:"ok"`
	SessionId string `json:"session_id"`
	State     State  `json:"state"`
	Prompt    string `json:"prompt"`
}

// SessionResponse defines model for SessionResponse.
type SessionResponse struct {
	Ok        bool          `json:"ok"`
	SessionId string        `json:"session_id"`
	State     State         `json:"state"`
	Member    *Member       `json:"member"`
	LastError *ErrorDetail  `json:"last_error"`
	Order     *OrderSummary `json:"order,omitempty"`
}

// LookupMemberResponse defines model for LookupMemberResponse.
type LookupMemberResponse struct {
	Ok     bool   `json:"ok"`
	State  State  `json:"state"`
	Member Member `json:"member"`
	Prompt string `json:"prompt"`
}

// SubmitOrderResponse defines model for SubmitOrderResponse.
type SubmitOrderResponse struct {
	Ok              bool         `json:"ok"`
	State           State        `json:"state"`
	Order           OrderSummary `json:"order"`
	ThankYouMessage string       `json:"thank_you_message"`
}

// FailureResponse defines model for FailureResponse.
type FailureResponse struct {
	Ok     bool        `json:"ok"`
	State  State       `json:"state"`
	Error  ErrorDetail `json:"error"`
	Prompt *string     `json:"prompt,omitempty"`
}

// DetailResponse defines model for DetailResponse.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// SessionId defines model for SessionId.
type SessionId = string

// LookupMemberJSONRequestBody defines body for LookupMember for application/json ContentType.
type LookupMemberJSONRequestBody = LookupMemberRequest

// SubmitOrderJSONRequestBody defines body for SubmitOrder for application/json ContentType.
type SubmitOrderJSONRequestBody = SubmitOrderRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Open a new call session
	// (POST /api/sessions)
	CreateSession(ctx echo.Context) error
	// Read the current state of a session
	// (GET /api/sessions/{sessionId})
	GetSession(ctx echo.Context, sessionId SessionId) error
	// Identify the caller by member number
	// (POST /api/sessions/{sessionId}/member-lookup)
	LookupMember(ctx echo.Context, sessionId SessionId) error
	// Record the session's order
	// (POST /api/sessions/{sessionId}/order)
	SubmitOrder(ctx echo.Context, sessionId SessionId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateSession converts echo context to params.
func (w *ServerInterfaceWrapper) CreateSession(ctx echo.Context) error {
	return w.Handler.CreateSession(ctx)
}

// GetSession converts echo context to params.
func (w *ServerInterfaceWrapper) GetSession(ctx echo.Context) error {
	sessionId, err := bindSessionID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetSession(ctx, sessionId)
}

// LookupMember converts echo context to params.
func (w *ServerInterfaceWrapper) LookupMember(ctx echo.Context) error {
	sessionId, err := bindSessionID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.LookupMember(ctx, sessionId)
}

// SubmitOrder converts echo context to params.
func (w *ServerInterfaceWrapper) SubmitOrder(ctx echo.Context) error {
	sessionId, err := bindSessionID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SubmitOrder(ctx, sessionId)
}

func bindSessionID(ctx echo.Context) (SessionId, error) {
	var sessionId SessionId

	err := runtime.BindStyledParameterWithOptions("simple", "sessionId", ctx.Param("sessionId"), &sessionId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sessionId: %s", err))
	}

	return sessionId, nil
}

// EchoRouter is the subset of echo routing used for registration, so that
// both *echo.Echo and *echo.Group can be passed.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to
// the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/sessions", wrapper.CreateSession)
	router.GET(baseURL+"/api/sessions/:sessionId", wrapper.GetSession)
	router.POST(baseURL+"/api/sessions/:sessionId/member-lookup", wrapper.LookupMember)
	router.POST(baseURL+"/api/sessions/:sessionId/order", wrapper.SubmitOrder)
}
