package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// ChangeOrderStatusCommandHandler handles order lifecycle transitions.
// It loads the order, applies the transition through the aggregate's state
// machine, and persists the result with an optimistic version check so that
// two concurrent transitions on the same order cannot both succeed.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
// Requires an OrderUoWFactory for transactional persistence and a Clock for
// the transition timestamp.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the status-change command.
//
// Error kinds surfaced to the caller:
//   - errs.ObjectNotFoundError when the order id does not exist
//   - order.InvalidStatusTransitionError when the change is illegal; the
//     order is left untouched
//   - errs.VersionIsInvalidError when a concurrent writer raced ahead; the
//     caller may re-read and retry
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(cmd.Target(), h.clock.Now(), cmd.Reason()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
