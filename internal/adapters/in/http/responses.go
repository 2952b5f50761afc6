package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"callcenter/internal/core/application/usecases/commands"
	"callcenter/internal/core/application/usecases/queries"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

func failure(ctx echo.Context, state session.State, f session.Failure) error {
	resp := servers.FailureResponse{
		Ok:    false,
		State: state.String(),
		Error: servers.ErrorDetail{Code: string(f.Code), Message: f.Message},
	}

	// Only input the agent can correct is followed by a re-prompt.
	if f.Code.Category() != session.CategoryConflict {
		if prompt := session.PromptFor(state); prompt != "" {
			resp.Prompt = &prompt
		}
	}

	return ctx.JSON(statusFor(f.Code), resp)
}

func notFound(ctx echo.Context) error {
	return ctx.JSON(http.StatusNotFound, servers.DetailResponse{Detail: "session not found"})
}

func statusFor(code session.ErrorCode) int {
	switch code.Category() {
	case session.CategoryValidation, session.CategoryRejected:
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

// bindFailure turns a body decoding error into a validation failure naming
// the offending field where the decoder reports one.
func bindFailure(err error) session.Failure {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "member_number":
			return commands.ValidationFailure(commands.ErrMemberNumberIsInvalid)
		case "order_number":
			return commands.ValidationFailure(commands.ErrOrderNumberIsInvalid)
		case "quantity":
			return commands.ValidationFailure(commands.ErrQuantityIsInvalid)
		}
	}
	return session.NewValidationFailure("request body must be a JSON object")
}

func toSessionResponse(view queries.GetSessionQueryResponse) servers.SessionResponse {
	resp := servers.SessionResponse{
		Ok:        true,
		SessionId: view.ID.String(),
		State:     view.State.String(),
	}

	if view.Member != nil {
		resp.Member = &servers.Member{MemberNumber: view.Member.Number, Name: view.Member.Name}
	}

	if view.LastError != nil {
		resp.LastError = &servers.ErrorDetail{Code: string(view.LastError.Code), Message: view.LastError.Message}
	}

	if view.Order != nil {
		resp.Order = &servers.OrderSummary{OrderNumber: view.Order.OrderNumber, Quantity: view.Order.Quantity}
	}

	return resp
}
