package commands

import (
	"errors"

	"callcenter/internal/core/domain/model/order"
	"callcenter/internal/core/domain/model/session"
)

var (
	ErrMemberNumberIsInvalid = errors.New("member number must be 8 digits")
	ErrOrderNumberIsInvalid  = errors.New("order number must be 8 digits")
	ErrQuantityIsInvalid     = errors.New("quantity must be a positive integer")
)

// Outcome is the structured result of an intake event. Session is the
// session as it stands after the event; Failure is nil on success.
// Infrastructure faults are never reported here; handlers return them as errors.
type Outcome struct {
	Session *session.CallSession
	Order   *order.Order
	Failure *session.Failure
}

// Succeeded reports whether the event was admitted.
func (o Outcome) Succeeded() bool {
	return o.Failure == nil
}

// ValidationFailure converts a command constructor error into the
// VALIDATION_ERROR reported to the agent. Member number problems are
// reported first, then order number, then quantity.
func ValidationFailure(err error) session.Failure {
	for _, known := range []error{ErrMemberNumberIsInvalid, ErrOrderNumberIsInvalid, ErrQuantityIsInvalid} {
		if errors.Is(err, known) {
			return session.NewValidationFailure(known.Error())
		}
	}
	return session.NewValidationFailure(err.Error())
}
