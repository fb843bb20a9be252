package services

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
)

// ErrEmptyCart is returned when order creation is attempted with no line
// items. Always recoverable by the caller (redisplay the cart).
var ErrEmptyCart = errors.New("cart has no line items")

// ErrBelowMinimumOrder is the sentinel for BelowMinimumOrderError.
var ErrBelowMinimumOrder = errors.New("subtotal is below the minimum order amount")

// BelowMinimumOrderError reports a checkout whose subtotal does not reach the
// applicable minimum-order threshold. It carries the threshold and the actual
// subtotal for a user-facing message.
type BelowMinimumOrderError struct {
	Minimum  kernel.Money
	Subtotal kernel.Money
}

func (e *BelowMinimumOrderError) Error() string {
	return fmt.Sprintf("%s: subtotal %s is below the minimum %s",
		ErrBelowMinimumOrder, e.Subtotal, e.Minimum)
}

func (e *BelowMinimumOrderError) Unwrap() error {
	return ErrBelowMinimumOrder
}

// OrderFactory is the pricing calculator: a domain service that converts a
// cart's line items plus a restaurant's fee configuration into validated
// checkout figures and a new Order in the Pending status.
//
// Computation, all in exact decimals with no intermediate rounding:
//
//	subtotal = sum(unitPrice * quantity)
//	tax      = subtotal * taxRate
//	total    = subtotal + tax + deliveryFee - discount (discount is 0 at creation)
//
// The factory performs no I/O; the caller supplies the day's existing order
// count for number generation and must serialize its allocation (see
// ports.OrderRepository).
type OrderFactory struct{}

// NewOrderFactory creates an OrderFactory instance.
func NewOrderFactory() OrderFactory {
	return OrderFactory{}
}

// CreateOrder validates the cart against the fee configuration and builds a
// Pending order.
//
// Parameters:
//   - orderID: identifier for the new order
//   - customerID, restaurantID: the user/restaurant pairing of the cart
//   - lineItems: ordered cart snapshot, must be non-empty
//   - fees: the restaurant's fee configuration (defaults already applied)
//   - dayOrderCount: how many orders were already created on the current UTC
//     calendar day; the new order takes sequence dayOrderCount+1
//   - now: the creation instant, stamped as the order's creation time; the
//     delivery estimate is now plus fees.EstimatedDeliveryTime
//
// Returns:
//   - ErrEmptyCart when lineItems is empty
//   - BelowMinimumOrderError when the subtotal is below fees.MinimumOrder
//   - a validation error from the aggregate for invalid inputs
//
// No Order is constructed on any error path.
func (f OrderFactory) CreateOrder(
	orderID kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	lineItems []order.LineItem,
	fees restaurant.FeeConfig,
	dayOrderCount int,
	now time.Time,
) (*order.Order, error) {
	if err := fees.Validate(); err != nil {
		return nil, err
	}

	if len(lineItems) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range lineItems {
		subtotal = subtotal.Add(item.Total())
	}

	if subtotal.LessThan(fees.MinimumOrder()) {
		return nil, &BelowMinimumOrderError{Minimum: fees.MinimumOrder(), Subtotal: subtotal}
	}

	tax := subtotal.ApplyRate(fees.TaxRate())

	number, err := kernel.GenerateOrderNumber(now.UTC().Year(), dayOrderCount+1)
	if err != nil {
		return nil, err
	}

	return order.NewOrder(
		orderID,
		number,
		customerID,
		restaurantID,
		lineItems,
		subtotal,
		tax,
		fees.DeliveryFee(),
		now,
		now.UTC().Add(fees.EstimatedDeliveryTime()),
	)
}
