package order

import (
	"errors"
	"fmt"
	"time"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order bypassed NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// DefaultQuantity is used when the agent does not state a quantity.
const DefaultQuantity = 1

// Order is the record of what the member ordered during a call.
//
// Order follows these invariants:
//   - Must have valid order and session identifiers
//   - Member and order numbers are valid 8-digit codes
//   - Quantity is positive
//   - Immutable once created
type Order struct {
	id           kernel.UUID
	sessionID    kernel.UUID
	memberNumber kernel.DigitCode
	orderNumber  kernel.DigitCode
	quantity     int
	createdAt    time.Time

	isConstructed bool
}

// NewOrder creates an order for the given session with a fresh identifier.
//
// Example:
//
//	o, err := order.NewOrder(s.ID(), s.Member().Number(), orderNumber, 1, time.Now())
//	if err != nil {
//	    return err
//	}
func NewOrder(
	sessionID kernel.UUID,
	memberNumber, orderNumber kernel.DigitCode,
	quantity int,
	now time.Time,
) (*Order, error) {
	return RestoreOrder(kernel.NewUUID(), sessionID, memberNumber, orderNumber, quantity, now)
}

// RestoreOrder rebuilds an order read from storage.
func RestoreOrder(
	id, sessionID kernel.UUID,
	memberNumber, orderNumber kernel.DigitCode,
	quantity int,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{createdAt: createdAt, isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setSessionID(sessionID),
		o.setMemberNumber(memberNumber),
		o.setOrderNumber(orderNumber),
		o.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// SessionID returns the session this order was committed for.
func (o *Order) SessionID() kernel.UUID {
	return o.sessionID
}

// MemberNumber returns the ordering member's number.
func (o *Order) MemberNumber() kernel.DigitCode {
	return o.memberNumber
}

// OrderNumber returns the catalogue order number.
func (o *Order) OrderNumber() kernel.DigitCode {
	return o.orderNumber
}

// Quantity returns the number of items ordered.
func (o *Order) Quantity() int {
	return o.quantity
}

// CreatedAt returns the commit time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("session id", err)
	}
	o.sessionID = id
	return nil
}

func (o *Order) setMemberNumber(number kernel.DigitCode) error {
	if err := number.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("member number", err)
	}
	o.memberNumber = number
	return nil
}

func (o *Order) setOrderNumber(number kernel.DigitCode) error {
	if err := number.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order number", err)
	}
	o.orderNumber = number
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}
