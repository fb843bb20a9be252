package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrReasonRequiresCancelledTarget = errors.New(
		"a cancellation reason is only allowed when the target status is Cancelled",
	)
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// lifecycle status, optionally with a cancellation reason when the target is
// Cancelled. Issued by the admin back-office and the checkout-confirmation
// flow.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	reason  string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a status-change command.
// Validates that the order id is a valid UUID, the target a valid lifecycle
// status, and that a reason is only supplied for a Cancelled target.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	reason string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setReason(reason, target),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// Reason returns the cancellation reason, empty unless the target is
// Cancelled and a reason was supplied.
func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setReason(reason string, target order.Status) error {
	if reason != "" && target != order.Cancelled {
		return ErrReasonRequiresCancelledTarget
	}
	c.reason = reason
	return nil
}
