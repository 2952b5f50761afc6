package commands

import (
	"errors"
	"fmt"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand records the caller's order on a session.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(sessionID, "10020030", order.DefaultQuantity)
//	if err != nil {
//	    failure := ValidationFailure(err)
//	}
//	outcome, err := committer.Handle(ctx, cmd)
type SubmitOrderCommand struct {
	sessionID   kernel.UUID
	orderNumber kernel.DigitCode
	quantity    int

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand validates the order number format and quantity.
// Callers substitute order.DefaultQuantity when the quantity was omitted.
func NewSubmitOrderCommand(sessionID kernel.UUID, orderNumber string, quantity int) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setOrderNumber(orderNumber),
		cmd.setQuantity(quantity),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// SessionID returns the target session.
func (c SubmitOrderCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// OrderNumber returns the submitted order number.
func (c SubmitOrderCommand) OrderNumber() kernel.DigitCode {
	return c.orderNumber
}

// Quantity returns the submitted quantity.
func (c SubmitOrderCommand) Quantity() int {
	return c.quantity
}

func (c *SubmitOrderCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.sessionID = id
	return nil
}

func (c *SubmitOrderCommand) setOrderNumber(raw string) error {
	number, err := kernel.NewDigitCode("order number", raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOrderNumberIsInvalid, err)
	}
	c.orderNumber = number
	return nil
}

func (c *SubmitOrderCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrQuantityIsInvalid, quantity)
	}
	c.quantity = quantity
	return nil
}
