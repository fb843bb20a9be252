package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// CheckoutOrderCommandHandler handles the business logic for order creation.
// It loads the restaurant's fee configuration, allocates the day-scoped order
// number and runs the pricing calculator, all inside a single transaction so
// that concurrent checkouts cannot allocate the same sequence.
type CheckoutOrderCommandHandler struct {
	uowFactory   CheckoutUoWFactory
	orderFactory services.OrderFactory
	clock        ports.Clock
}

// NewCheckoutOrderCommandHandler creates a handler for order creation.
// Requires a CheckoutUoWFactory for transactional persistence and a Clock for
// the creation timestamp.
func NewCheckoutOrderCommandHandler(uowFactory CheckoutUoWFactory, clock ports.Clock) CheckoutOrderCommandHandler {
	return CheckoutOrderCommandHandler{
		uowFactory:   uowFactory,
		orderFactory: services.NewOrderFactory(),
		clock:        clock,
	}
}

// Handle processes the checkout command and returns the created order.
//
// Error kinds surfaced to the caller:
//   - services.ErrEmptyCart when the cart has no line items
//   - services.BelowMinimumOrderError when the subtotal misses the threshold
//   - errs.ObjectNotFoundError when the restaurant does not exist
func (h *CheckoutOrderCommandHandler) Handle(ctx context.Context, cmd CheckoutOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	fees, err := uow.RestaurantRepository().GetFeeConfig(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayOrderCount, err := orderRepo.CountCreatedBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	newOrder, err := h.orderFactory.CreateOrder(
		kernel.NewUUID(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.LineItems(),
		fees,
		dayOrderCount,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
