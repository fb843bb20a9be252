package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrCheckoutOrderCommandIsNotConstructed = errors.New(
	"CheckoutOrderCommand must be created via NewCheckoutOrderCommand constructor",
)

// CheckoutOrderCommand represents a request to turn a customer's cart into a
// new order. It carries the cart's line-item snapshots plus the
// user/restaurant pairing; pricing and minimum-order validation happen in the
// handler via the pricing calculator.
//
// An empty line-item list is accepted by the command so the calculator can
// reject it with its dedicated empty-cart error.
type CheckoutOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.UUID
	restaurantID kernel.UUID
	lineItems    []order.LineItem

	guard guard.ConstructorGuard
}

// NewCheckoutOrderCommand creates a checkout command.
// Validates that the customer and restaurant identifiers are valid UUIDs;
// line items were already validated piecewise by order.NewLineItem.
func NewCheckoutOrderCommand(
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	lineItems []order.LineItem,
) (CheckoutOrderCommand, error) {
	cmd := CheckoutOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
	); err != nil {
		return CheckoutOrderCommand{}, err
	}

	cmd.lineItems = make([]order.LineItem, len(lineItems))
	copy(cmd.lineItems, lineItems)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckoutOrderCommandIsNotConstructed if validation fails.
func (c CheckoutOrderCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutOrderCommandIsNotConstructed)
}

// CustomerID returns the identifier of the customer checking out.
func (c CheckoutOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the identifier of the restaurant the cart belongs to.
func (c CheckoutOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// LineItems returns the cart's line-item snapshot in order.
func (c CheckoutOrderCommand) LineItems() []order.LineItem {
	items := make([]order.LineItem, len(c.lineItems))
	copy(items, c.lineItems)
	return items
}

func (c *CheckoutOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CheckoutOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}
